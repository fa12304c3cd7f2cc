package repository

import (
	"context"
	"testing"

	"haven/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedImpressions(t *testing.T, db *gorm.DB) {
	t.Helper()
	for _, kind := range []models.ImpressionKind{models.ImpressionLike, models.ImpressionDislike, models.ImpressionFavourite} {
		require.NoError(t, db.Create(&models.Impression{Name: kind}).Error)
	}
}

func articleCounters(t *testing.T, db *gorm.DB, articleID uint) (likes, dislikes, favourites int) {
	t.Helper()
	var article models.Article
	require.NoError(t, db.First(&article, articleID).Error)
	return article.Likes, article.Dislikes, article.FavouriteCount
}

func TestReactionRepository_React(t *testing.T) {
	db := setupRepoTestDB(t)
	seedImpressions(t, db)
	repo := NewReactionRepository(db)
	ctx := context.Background()

	author := createTestProfile(t, db, "author")
	reader := createTestProfile(t, db, "reader")
	article := createTestArticle(t, db, author.ID, "reacted")

	require.NoError(t, repo.React(ctx, article.ID, reader.UserID, models.ImpressionLike))

	likes, dislikes, favourites := articleCounters(t, db, article.ID)
	assert.Equal(t, 1, likes)
	assert.Zero(t, dislikes)
	assert.Zero(t, favourites)
}

func TestReactionRepository_React_Duplicate(t *testing.T) {
	db := setupRepoTestDB(t)
	seedImpressions(t, db)
	repo := NewReactionRepository(db)
	ctx := context.Background()

	author := createTestProfile(t, db, "author")
	reader := createTestProfile(t, db, "reader")
	article := createTestArticle(t, db, author.ID, "twice")

	require.NoError(t, repo.React(ctx, article.ID, reader.UserID, models.ImpressionLike))

	err := repo.React(ctx, article.ID, reader.UserID, models.ImpressionLike)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)
	assert.Equal(t, "You have already Liked this article.", appErr.Message)

	// The held reaction blocks any kind, not just the same one.
	err = repo.React(ctx, article.ID, reader.UserID, models.ImpressionDislike)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)

	likes, dislikes, _ := articleCounters(t, db, article.ID)
	assert.Equal(t, 1, likes)
	assert.Zero(t, dislikes)
}

func TestReactionRepository_React_InvalidKind(t *testing.T) {
	db := setupRepoTestDB(t)
	seedImpressions(t, db)
	repo := NewReactionRepository(db)

	err := repo.React(context.Background(), 1, 1, models.ImpressionKind("Applaud"))
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	assert.Equal(t, "You have entered invalid data.", appErr.Message)
}

func TestReactionRepository_Remove(t *testing.T) {
	db := setupRepoTestDB(t)
	seedImpressions(t, db)
	repo := NewReactionRepository(db)
	ctx := context.Background()

	author := createTestProfile(t, db, "author")
	reader := createTestProfile(t, db, "reader")
	article := createTestArticle(t, db, author.ID, "undone")

	require.NoError(t, repo.React(ctx, article.ID, reader.UserID, models.ImpressionFavourite))
	require.NoError(t, repo.Remove(ctx, article.ID, reader.UserID, models.ImpressionFavourite))

	_, _, favourites := articleCounters(t, db, article.ID)
	assert.Zero(t, favourites)

	var reactions int64
	require.NoError(t, db.Model(&models.Reaction{}).Where("article_id = ?", article.ID).Count(&reactions).Error)
	assert.Zero(t, reactions)

	// Removing again has nothing to undo.
	err := repo.Remove(ctx, article.ID, reader.UserID, models.ImpressionFavourite)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)
	assert.Equal(t, "You have not yet interacted with this article", appErr.Message)
}

func TestReactionRepository_Remove_WrongKind(t *testing.T) {
	db := setupRepoTestDB(t)
	seedImpressions(t, db)
	repo := NewReactionRepository(db)
	ctx := context.Background()

	author := createTestProfile(t, db, "author")
	reader := createTestProfile(t, db, "reader")
	article := createTestArticle(t, db, author.ID, "mismatched")

	require.NoError(t, repo.React(ctx, article.ID, reader.UserID, models.ImpressionLike))

	err := repo.Remove(ctx, article.ID, reader.UserID, models.ImpressionDislike)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)

	likes, _, _ := articleCounters(t, db, article.ID)
	assert.Equal(t, 1, likes)
}

func TestReactionRepository_CountByKind(t *testing.T) {
	db := setupRepoTestDB(t)
	seedImpressions(t, db)
	repo := NewReactionRepository(db)
	ctx := context.Background()

	author := createTestProfile(t, db, "author")
	one := createTestProfile(t, db, "one")
	two := createTestProfile(t, db, "two")
	article := createTestArticle(t, db, author.ID, "counted")

	require.NoError(t, repo.React(ctx, article.ID, one.UserID, models.ImpressionLike))
	require.NoError(t, repo.React(ctx, article.ID, two.UserID, models.ImpressionLike))

	count, err := repo.CountByKind(ctx, article.ID, models.ImpressionLike)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountByKind(ctx, article.ID, models.ImpressionDislike)
	require.NoError(t, err)
	assert.Zero(t, count)
}
