package service

import (
	"context"

	"haven/internal/models"
	"haven/internal/repository"
)

type ReactionService struct {
	reactionRepo repository.ReactionRepository
	articleRepo  repository.ArticleRepository
}

type ReactInput struct {
	Slug   string
	UserID uint
	Kind   string
}

func NewReactionService(
	reactionRepo repository.ReactionRepository,
	articleRepo repository.ArticleRepository,
) *ReactionService {
	return &ReactionService{
		reactionRepo: reactionRepo,
		articleRepo:  articleRepo,
	}
}

// React records the user's impression on an article and returns the article
// with its counters settled.
func (s *ReactionService) React(ctx context.Context, in ReactInput) (*models.Article, error) {
	kind, ok := models.ParseImpressionKind(in.Kind)
	if !ok {
		return nil, models.NewValidationError("You have entered invalid data.")
	}

	article, err := s.articleRepo.GetBySlug(ctx, in.Slug)
	if err != nil {
		return nil, err
	}

	if err := s.reactionRepo.React(ctx, article.ID, in.UserID, kind); err != nil {
		return nil, err
	}

	return s.articleRepo.GetBySlug(ctx, in.Slug)
}

// RemoveReaction withdraws the user's impression of the given kind.
func (s *ReactionService) RemoveReaction(ctx context.Context, in ReactInput) error {
	kind, ok := models.ParseImpressionKind(in.Kind)
	if !ok {
		return models.NewValidationError("You have entered invalid data.")
	}

	article, err := s.articleRepo.GetBySlug(ctx, in.Slug)
	if err != nil {
		return err
	}

	return s.reactionRepo.Remove(ctx, article.ID, in.UserID, kind)
}
