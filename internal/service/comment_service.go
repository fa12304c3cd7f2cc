package service

import (
	"context"
	"errors"

	"haven/internal/middleware"
	"haven/internal/models"
	"haven/internal/notifications"
	"haven/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	articleRepo repository.ArticleRepository
	notifier    *notifications.Notifier
}

type CreateCommentInput struct {
	Slug     string
	AuthorID uint
	Body     string
	ParentID *uint
}

type UpdateCommentInput struct {
	Slug      string
	CommentID uint
	AuthorID  uint
	Body      string
}

type DeleteCommentInput struct {
	Slug      string
	CommentID uint
	AuthorID  uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	articleRepo repository.ArticleRepository,
	notifier *notifications.Notifier,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		articleRepo: articleRepo,
		notifier:    notifier,
	}
}

// getArticle resolves the slug for comment operations, which report a missing
// article in their own words.
func (s *CommentService) getArticle(ctx context.Context, slug string) (*models.Article, error) {
	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return nil, models.NewNotFoundError("The Article does not exist")
		}
		return nil, err
	}
	return article, nil
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.Body == "" {
		return nil, models.NewValidationError("Body is required")
	}

	article, err := s.getArticle(ctx, in.Slug)
	if err != nil {
		return nil, err
	}

	if in.ParentID != nil {
		parent, err := s.commentRepo.GetForArticle(ctx, article.ID, *in.ParentID)
		if err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
				return nil, models.NewNotFoundError("The parent comment does not exist")
			}
			return nil, err
		}
		// Threads are one level deep. Replying to a reply is refused rather
		// than silently reattached to the grandparent.
		if parent.IsReply() {
			return nil, models.NewValidationError("Parent comment is already a sub comment")
		}
	}

	comment := &models.Comment{
		Body:      in.Body,
		AuthorID:  in.AuthorID,
		ArticleID: article.ID,
		ParentID:  in.ParentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil && created.AuthorID != article.AuthorID {
		if pubErr := s.notifier.ArticleCommented(ctx, article.Author.UserID, created.Author.User.Username, article.Slug); pubErr != nil {
			middleware.Logger.WarnContext(ctx, "Failed to publish comment event", "error", pubErr)
		}
	}

	return created, nil
}

// ListComments returns the article's top level comments in posting order.
func (s *CommentService) ListComments(ctx context.Context, slug string) ([]*models.Comment, error) {
	article, err := s.getArticle(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.commentRepo.ListTopLevel(ctx, article.ID)
}

// GetComment returns one comment plus, for a top level comment, its replies.
func (s *CommentService) GetComment(ctx context.Context, slug string, commentID uint) (*models.Comment, []*models.Comment, error) {
	article, err := s.getArticle(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	comment, err := s.commentRepo.GetForArticle(ctx, article.ID, commentID)
	if err != nil {
		return nil, nil, err
	}

	var replies []*models.Comment
	if !comment.IsReply() {
		replies, err = s.commentRepo.ListReplies(ctx, article.ID, comment.ID)
		if err != nil {
			return nil, nil, err
		}
	}
	return comment, replies, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	if in.Body == "" {
		return nil, models.NewValidationError("Body is required")
	}

	article, err := s.getArticle(ctx, in.Slug)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetForArticle(ctx, article.ID, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != in.AuthorID {
		return nil, models.NewPermissionDeniedError("You are not authenticated for the action")
	}

	comment.Body = in.Body
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	article, err := s.getArticle(ctx, in.Slug)
	if err != nil {
		return err
	}

	comment, err := s.commentRepo.GetForArticle(ctx, article.ID, in.CommentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != in.AuthorID {
		return models.NewPermissionDeniedError("You are not authenticated for the action")
	}

	return s.commentRepo.Delete(ctx, comment)
}
