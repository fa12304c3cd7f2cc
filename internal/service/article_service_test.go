package service

import (
	"context"
	"strings"
	"testing"

	"haven/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArticleServiceForCreate(store map[string]*models.Article) *ArticleService {
	articleRepo := &articleRepoStub{
		slugExistsFn: func(_ context.Context, slug string) (bool, error) {
			_, ok := store[slug]
			return ok, nil
		},
		createFn: func(_ context.Context, article *models.Article) error {
			article.ID = uint(len(store) + 1)
			store[article.Slug] = article
			return nil
		},
		getBySlugFn: func(_ context.Context, slug string) (*models.Article, error) {
			article, ok := store[slug]
			if !ok {
				return nil, models.NewNotFoundError("No article was found")
			}
			return article, nil
		},
	}
	tagRepo := &tagRepoStub{
		getOrCreateFn: func(_ context.Context, name string) (*models.Tag, error) {
			return &models.Tag{ID: uint(len(name)), Name: name}, nil
		},
	}
	return NewArticleService(articleRepo, tagRepo, &profileRepoStub{}, nil, nil, "http://localhost:8310")
}

func TestArticleService_CreateArticle(t *testing.T) {
	store := map[string]*models.Article{}
	svc := newArticleServiceForCreate(store)

	article, err := svc.CreateArticle(context.Background(), CreateArticleInput{
		AuthorID:    1,
		Title:       "How to Train Your Dragon",
		Description: "Ever wonder how?",
		Body:        strings.Repeat("word ", 800),
		Tags:        []string{"dragons", "training", "dragons"},
	})
	require.NoError(t, err)

	assert.Equal(t, "how-to-train-your-dragon", article.Slug)
	assert.Equal(t, "3 minutes", article.ReadingTime)
	// Duplicate tag names collapse.
	require.Len(t, article.Tags, 2)
	assert.Equal(t, "dragons", article.Tags[0].Name)
	assert.Equal(t, "training", article.Tags[1].Name)
}

func TestArticleService_CreateArticle_DuplicateTitle(t *testing.T) {
	store := map[string]*models.Article{}
	svc := newArticleServiceForCreate(store)

	first, err := svc.CreateArticle(context.Background(), CreateArticleInput{
		AuthorID: 1, Title: "Same Title", Body: "one two three",
	})
	require.NoError(t, err)
	assert.Equal(t, "same-title", first.Slug)

	second, err := svc.CreateArticle(context.Background(), CreateArticleInput{
		AuthorID: 2, Title: "Same Title", Body: "four five six",
	})
	require.NoError(t, err)
	assert.Equal(t, "same-title-1", second.Slug)
}

func TestArticleService_CreateArticle_Validation(t *testing.T) {
	svc := newArticleServiceForCreate(map[string]*models.Article{})

	tests := []struct {
		name string
		in   CreateArticleInput
	}{
		{"Missing Title", CreateArticleInput{Body: "text"}},
		{"Missing Body", CreateArticleInput{Title: "A Title"}},
		{"Title Too Long", CreateArticleInput{Title: strings.Repeat("a", 301), Body: "text"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateArticle(context.Background(), tt.in)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, models.CodeValidation, appErr.Code)
		})
	}
}

func TestArticleService_GetArticle_RecordsReaderStats(t *testing.T) {
	article := &models.Article{ID: 1, Slug: "long-read", AuthorID: 1, ReadingTime: "4 minutes"}
	var recordedProfile uint
	var recordedMinutes int
	articleRepo := &articleRepoStub{
		getBySlugFn: func(_ context.Context, _ string) (*models.Article, error) {
			return article, nil
		},
	}
	profileRepo := &profileRepoStub{
		recordReadingFn: func(_ context.Context, profileID uint, minutes int) error {
			recordedProfile, recordedMinutes = profileID, minutes
			return nil
		},
	}
	svc := NewArticleService(articleRepo, &tagRepoStub{}, profileRepo, nil, nil, "")

	_, err := svc.GetArticle(context.Background(), "long-read", 2)
	require.NoError(t, err)
	assert.Equal(t, uint(2), recordedProfile)
	assert.Equal(t, 4, recordedMinutes)
}

func TestArticleService_GetArticle_AuthorReadDoesNotCount(t *testing.T) {
	article := &models.Article{ID: 1, Slug: "own-piece", AuthorID: 5, ReadingTime: "4 minutes"}
	articleRepo := &articleRepoStub{
		getBySlugFn: func(_ context.Context, _ string) (*models.Article, error) {
			return article, nil
		},
	}
	profileRepo := &profileRepoStub{
		recordReadingFn: func(_ context.Context, _ uint, _ int) error {
			t.Fatal("stats must not be updated for the author")
			return nil
		},
	}
	svc := NewArticleService(articleRepo, &tagRepoStub{}, profileRepo, nil, nil, "")

	_, err := svc.GetArticle(context.Background(), "own-piece", 5)
	require.NoError(t, err)

	// Anonymous reads do not count either.
	_, err = svc.GetArticle(context.Background(), "own-piece", 0)
	require.NoError(t, err)
}

func TestArticleService_UpdateArticle_ReadingTimeFollowsBody(t *testing.T) {
	stored := &models.Article{ID: 1, Slug: "evolving", AuthorID: 1, Body: "short body", ReadingTime: "Less than a minute"}
	articleRepo := &articleRepoStub{
		getBySlugForAuthorFn: func(_ context.Context, _ string, _ uint) (*models.Article, error) {
			return stored, nil
		},
		updateFn: func(_ context.Context, article *models.Article) error {
			stored = article
			return nil
		},
		getBySlugFn: func(_ context.Context, _ string) (*models.Article, error) {
			return stored, nil
		},
	}
	svc := NewArticleService(articleRepo, &tagRepoStub{}, &profileRepoStub{}, nil, nil, "")

	// Title-only update keeps the estimate.
	updated, err := svc.UpdateArticle(context.Background(), UpdateArticleInput{
		AuthorID: 1, Slug: "evolving", Title: "New Title",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, "Less than a minute", updated.ReadingTime)
	assert.Equal(t, "evolving", updated.Slug)

	// A body change moves it.
	updated, err = svc.UpdateArticle(context.Background(), UpdateArticleInput{
		AuthorID: 1, Slug: "evolving", Body: strings.Repeat("word ", 800),
	})
	require.NoError(t, err)
	assert.Equal(t, "3 minutes", updated.ReadingTime)
}

func TestArticleService_UpdateArticle_NotOwner(t *testing.T) {
	articleRepo := &articleRepoStub{
		getBySlugForAuthorFn: func(_ context.Context, _ string, _ uint) (*models.Article, error) {
			return nil, models.NewPermissionDeniedError("You are not authenticated for the action")
		},
	}
	svc := NewArticleService(articleRepo, &tagRepoStub{}, &profileRepoStub{}, nil, nil, "")

	_, err := svc.UpdateArticle(context.Background(), UpdateArticleInput{AuthorID: 9, Slug: "not-mine", Title: "X"})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodePermissionDenied, appErr.Code)
}

func TestArticleService_DeleteArticle(t *testing.T) {
	var deletedID uint
	articleRepo := &articleRepoStub{
		getBySlugForAuthorFn: func(_ context.Context, slug string, authorID uint) (*models.Article, error) {
			if slug == "mine" && authorID == 1 {
				return &models.Article{ID: 7, Slug: slug, AuthorID: authorID}, nil
			}
			return nil, models.NewPermissionDeniedError("You are not authenticated for the action")
		},
		deleteFn: func(_ context.Context, articleID uint) error {
			deletedID = articleID
			return nil
		},
	}
	svc := NewArticleService(articleRepo, &tagRepoStub{}, &profileRepoStub{}, nil, nil, "")

	require.NoError(t, svc.DeleteArticle(context.Background(), "mine", 1))
	assert.Equal(t, uint(7), deletedID)

	err := svc.DeleteArticle(context.Background(), "mine", 2)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodePermissionDenied, appErr.Code)
}

type mailerStub struct {
	sendFn func(ctx context.Context, to, subject, body string) error
}

func (m *mailerStub) Send(ctx context.Context, to, subject, body string) error {
	return m.sendFn(ctx, to, subject, body)
}

func TestArticleService_ShareArticle(t *testing.T) {
	articleRepo := &articleRepoStub{
		getBySlugFn: func(_ context.Context, _ string) (*models.Article, error) {
			return &models.Article{ID: 1, Slug: "shared-piece", Title: "Shared Piece"}, nil
		},
	}
	profileRepo := &profileRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Profile, error) {
			return &models.Profile{ID: id, User: models.User{Username: "amy"}}, nil
		},
	}

	var sentTo, sentSubject, sentBody string
	mailer := &mailerStub{
		sendFn: func(_ context.Context, to, subject, body string) error {
			sentTo, sentSubject, sentBody = to, subject, body
			return nil
		},
	}
	svc := NewArticleService(articleRepo, &tagRepoStub{}, profileRepo, nil, mailer, "http://localhost:8310")

	err := svc.ShareArticle(context.Background(), ShareArticleInput{
		Slug: "shared-piece", SenderProfileID: 1, Recipient: "friend@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "friend@example.com", sentTo)
	assert.Equal(t, "amy shared an article with you", sentSubject)
	assert.Contains(t, sentBody, "/api/articles/shared-piece")
}

func TestArticleService_ShareArticle_InvalidRecipient(t *testing.T) {
	svc := NewArticleService(&articleRepoStub{}, &tagRepoStub{}, &profileRepoStub{}, nil, nil, "")

	err := svc.ShareArticle(context.Background(), ShareArticleInput{Slug: "x", Recipient: "not-an-email"})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}
