package repository

import (
	"context"

	"haven/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatingRepository defines the interface for article rating operations
type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	Average(ctx context.Context, articleID uint) (float64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(rating)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewConflictError("You have already rated this article")
	}
	return nil
}

func (r *ratingRepository) Average(ctx context.Context, articleID uint) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("article_id = ?", articleID).
		Select("COALESCE(AVG(value), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return avg, nil
}
