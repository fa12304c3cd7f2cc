package notifications

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_NilClientIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	assert.NoError(t, n.PublishUser(context.Background(), 1, "test payload"))
	assert.NoError(t, n.PublishFeed(context.Background(), "test payload"))
	assert.NoError(t, n.ArticlePublished(context.Background(), "amy", "a-slug", "A Title"))
	assert.NoError(t, n.NewFollower(context.Background(), 1, "amy"))
}

func TestUserChannel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		userID   uint
		expected string
	}{
		{1, "notifications:user:1"},
		{100, "notifications:user:100"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, UserChannel(tt.userID))
	}
}

func TestNotifier_ArticlePublished(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var received int32
	payloads := make(chan string, 1)
	require.NoError(t, n.StartPatternSubscriber(ctx, func(channel string, payload string) {
		if channel == FeedChannel() {
			atomic.AddInt32(&received, 1)
			payloads <- payload
		}
	}))

	require.NoError(t, n.ArticlePublished(context.Background(), "amy", "how-to-train", "How To Train"))
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&received) >= 1
	}, time.Second, 10*time.Millisecond)

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(<-payloads), &event))
	assert.Equal(t, EventArticlePublished, event["type"])
	assert.Equal(t, "amy", event["author"])
	assert.Equal(t, "how-to-train", event["slug"])
}

func TestNotifier_NewFollowerTargetsUserChannel(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	channels := make(chan string, 1)
	require.NoError(t, n.StartPatternSubscriber(ctx, func(channel string, _ string) {
		channels <- channel
	}))

	require.NoError(t, n.NewFollower(context.Background(), 7, "bob"))

	select {
	case channel := <-channels:
		assert.Equal(t, UserChannel(7), channel)
	case <-time.After(time.Second):
		t.Fatal("no message received")
	}
}
