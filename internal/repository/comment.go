package repository

import (
	"context"
	"errors"

	"haven/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
// Create and Delete keep the denormalized counters (Article.CommentCount,
// parent Comment.ThreadCount) in the same transaction as the row change.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	GetForArticle(ctx context.Context, articleID, commentID uint) (*models.Comment, error)
	ListTopLevel(ctx context.Context, articleID uint) ([]*models.Comment, error)
	ListReplies(ctx context.Context, articleID, parentID uint) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, comment *models.Comment) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Article{}).
			Where("id = ?", comment.ArticleID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error; err != nil {
			return err
		}
		if comment.ParentID != nil {
			return tx.Model(&models.Comment{}).
				Where("id = ?", *comment.ParentID).
				UpdateColumn("thread_count", gorm.Expr("thread_count + 1")).Error
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Author.User").
		First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("The comment does not exist")
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

// GetForArticle resolves a comment only when it belongs to the given article.
// A comment id that exists under a different article is still "does not exist"
// from the caller's point of view.
func (r *commentRepository) GetForArticle(ctx context.Context, articleID, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Author.User").
		Where("id = ? AND article_id = ?", commentID, articleID).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("The comment does not exist")
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) ListTopLevel(ctx context.Context, articleID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Author.User").
		Where("article_id = ? AND parent_id IS NULL", articleID).
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) ListReplies(ctx context.Context, articleID, parentID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Author.User").
		Where("article_id = ? AND parent_id = ?", articleID, parentID).
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit("Author", "Parent").Save(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes a single comment row and decrements comment_count by exactly
// one. Replies to a deleted top-level comment keep their rows; each reply's own
// deletion settles the counter for it. The count guards keep the counters from
// going negative if they were ever reseeded out of band.
func (r *commentRepository) Delete(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(comment).Error; err != nil {
			return err
		}
		if comment.ParentID != nil {
			if err := tx.Model(&models.Comment{}).
				Where("id = ? AND thread_count > 0", *comment.ParentID).
				UpdateColumn("thread_count", gorm.Expr("thread_count - 1")).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Article{}).
			Where("id = ? AND comment_count > 0", comment.ArticleID).
			UpdateColumn("comment_count", gorm.Expr("comment_count - 1")).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
