package repository

import (
	"context"
	"errors"
	"fmt"

	"haven/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionRepository defines the interface for reaction data operations.
// React and Remove keep the Article counters and the Reaction rows in lockstep:
// the row mutation and the ±1 counter adjustment always commit or roll back
// together.
type ReactionRepository interface {
	React(ctx context.Context, articleID, userID uint, kind models.ImpressionKind) error
	Remove(ctx context.Context, articleID, userID uint, kind models.ImpressionKind) error
	GetImpression(ctx context.Context, kind models.ImpressionKind) (*models.Impression, error)
	CountByKind(ctx context.Context, articleID uint, kind models.ImpressionKind) (int64, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new reaction repository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// counterColumn maps a reaction kind to the denormalized Article column it drives.
func counterColumn(kind models.ImpressionKind) string {
	switch kind {
	case models.ImpressionLike:
		return "likes"
	case models.ImpressionDislike:
		return "dislikes"
	case models.ImpressionFavourite:
		return "favourite_count"
	}
	return ""
}

func (r *reactionRepository) GetImpression(ctx context.Context, kind models.ImpressionKind) (*models.Impression, error) {
	var impression models.Impression
	if err := r.db.WithContext(ctx).Where("name = ?", kind).First(&impression).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewValidationError("You have entered invalid data.")
		}
		return nil, models.NewInternalError(err)
	}
	return &impression, nil
}

func (r *reactionRepository) React(ctx context.Context, articleID, userID uint, kind models.ImpressionKind) error {
	column := counterColumn(kind)
	if column == "" {
		return models.NewValidationError("You have entered invalid data.")
	}

	impression, err := r.GetImpression(ctx, kind)
	if err != nil {
		return err
	}

	txErr := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reaction := models.Reaction{
			ArticleID:    articleID,
			UserID:       userID,
			ImpressionID: impression.ID,
			Kind:         kind,
		}
		// The (article_id, user_id) unique index plus DO NOTHING makes the
		// existence check and the insert one atomic step; two concurrent
		// reacts cannot both succeed.
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&reaction)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewConflictError(fmt.Sprintf("You have already %sd this article.", kind))
		}

		return tx.Model(&models.Article{}).
			Where("id = ?", articleID).
			UpdateColumn(column, gorm.Expr(column+" + 1")).Error
	})

	var appErr *models.AppError
	if errors.As(txErr, &appErr) {
		return appErr
	}
	if txErr != nil {
		return models.NewInternalError(txErr)
	}
	return nil
}

func (r *reactionRepository) Remove(ctx context.Context, articleID, userID uint, kind models.ImpressionKind) error {
	column := counterColumn(kind)
	if column == "" {
		return models.NewValidationError("You have entered invalid data.")
	}

	if _, err := r.GetImpression(ctx, kind); err != nil {
		return err
	}

	txErr := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("article_id = ? AND user_id = ? AND kind = ?", articleID, userID, kind).
			Delete(&models.Reaction{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewConflictError("You have not yet interacted with this article")
		}

		return tx.Model(&models.Article{}).
			Where("id = ?", articleID).
			UpdateColumn(column, gorm.Expr(column+" - 1")).Error
	})

	var appErr *models.AppError
	if errors.As(txErr, &appErr) {
		return appErr
	}
	if txErr != nil {
		return models.NewInternalError(txErr)
	}
	return nil
}

func (r *reactionRepository) CountByKind(ctx context.Context, articleID uint, kind models.ImpressionKind) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Where("article_id = ? AND kind = ?", articleID, kind).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
