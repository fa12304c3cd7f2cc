// Package notifications publishes domain events into Redis channels.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Event types carried on the channels.
const (
	EventArticlePublished = "article_published"
	EventArticleCommented = "article_commented"
	EventNewFollower      = "new_follower"
)

// Notifier provides helpers to publish domain events into Redis channels.
// Every method is a no-op when no Redis client is configured, so callers
// never need to branch on whether eventing is enabled.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishUser sends an event payload to a user's channel.
func (n *Notifier) PublishUser(ctx context.Context, userID uint, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, UserChannel(userID), payload).Err()
}

// PublishFeed sends an event payload to the shared article feed channel.
func (n *Notifier) PublishFeed(ctx context.Context, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, FeedChannel(), payload).Err()
}

// ArticlePublished announces a newly published article on the feed channel.
func (n *Notifier) ArticlePublished(ctx context.Context, authorUsername, slug, title string) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(map[string]interface{}{
		"type":   EventArticlePublished,
		"author": authorUsername,
		"slug":   slug,
		"title":  title,
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return n.PublishFeed(ctx, string(payload))
}

// ArticleCommented notifies an article's author about a new comment.
func (n *Notifier) ArticleCommented(ctx context.Context, authorUserID uint, commenter, slug string) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(map[string]interface{}{
		"type":      EventArticleCommented,
		"commenter": commenter,
		"slug":      slug,
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return n.PublishUser(ctx, authorUserID, string(payload))
}

// NewFollower notifies a user that someone started following them.
func (n *Notifier) NewFollower(ctx context.Context, followeeUserID uint, followerUsername string) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(map[string]interface{}{
		"type":     EventNewFollower,
		"follower": followerUsername,
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return n.PublishUser(ctx, followeeUserID, string(payload))
}

// StartPatternSubscriber subscribes to the user and feed channels and calls
// onMessage for each incoming message. onMessage receives channel and payload.
func (n *Notifier) StartPatternSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "notifications:user:*", FeedChannel())
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in PatternSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// UserChannel derives the Redis channel name for a user.
func UserChannel(userID uint) string {
	return "notifications:user:" + strconv.FormatUint(uint64(userID), 10)
}

// FeedChannel is the shared channel carrying newly published articles.
func FeedChannel() string {
	return "feed:articles"
}
