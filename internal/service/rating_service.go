package service

import (
	"context"

	"haven/internal/models"
	"haven/internal/repository"
)

type RatingService struct {
	ratingRepo  repository.RatingRepository
	articleRepo repository.ArticleRepository
}

func NewRatingService(
	ratingRepo repository.RatingRepository,
	articleRepo repository.ArticleRepository,
) *RatingService {
	return &RatingService{
		ratingRepo:  ratingRepo,
		articleRepo: articleRepo,
	}
}

// Rate records a one-time 1 to 5 score for an article and returns the article
// with the refreshed average.
func (s *RatingService) Rate(ctx context.Context, slug string, userID uint, value int) (*models.Article, error) {
	if value < 1 || value > 5 {
		return nil, models.NewValidationError("You have entered invalid data.")
	}

	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	rating := &models.Rating{
		ArticleID: article.ID,
		UserID:    userID,
		Value:     value,
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}

	return s.articleRepo.GetBySlug(ctx, slug)
}
