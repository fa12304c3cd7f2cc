package repository

import (
	"context"
	"errors"

	"haven/internal/models"

	"gorm.io/gorm"
)

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	GetBySlugForAuthor(ctx context.Context, slug string, authorID uint) (*models.Article, error)
	List(ctx context.Context, limit, offset int) ([]*models.Article, error)
	Update(ctx context.Context, article *models.Article) error
	ReplaceTags(ctx context.Context, article *models.Article, tags []models.Tag) error
	Delete(ctx context.Context, articleID uint) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// applyArticleDetails adds a subquery computing the average rating in the same query.
func (r *articleRepository) applyArticleDetails(db *gorm.DB) *gorm.DB {
	return db.Select("articles.*, " +
		"COALESCE((SELECT AVG(value) FROM ratings WHERE ratings.article_id = articles.id), 0) as rating")
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	if err := r.db.WithContext(ctx).Create(article).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *articleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	var article models.Article
	err := r.applyArticleDetails(r.db.WithContext(ctx)).
		Preload("Author").
		Preload("Author.User").
		Preload("Tags").
		Where("slug = ?", slug).
		First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("No article was found")
		}
		return nil, models.NewInternalError(err)
	}
	return &article, nil
}

// GetBySlugForAuthor resolves an article only when it belongs to the given
// author. Missing and not-yours deliberately collapse into one
// permission-denied failure; callers must not be able to probe for other
// authors' slugs through this path.
func (r *articleRepository) GetBySlugForAuthor(ctx context.Context, slug string, authorID uint) (*models.Article, error) {
	var article models.Article
	err := r.applyArticleDetails(r.db.WithContext(ctx)).
		Preload("Author").
		Preload("Author.User").
		Preload("Tags").
		Where("slug = ? AND author_id = ?", slug, authorID).
		First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewPermissionDeniedError("You are not authenticated for the action")
		}
		return nil, models.NewInternalError(err)
	}
	return &article, nil
}

func (r *articleRepository) List(ctx context.Context, limit, offset int) ([]*models.Article, error) {
	var articles []*models.Article
	err := r.applyArticleDetails(r.db.WithContext(ctx)).
		Preload("Author").
		Preload("Author.User").
		Preload("Tags").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return articles, nil
}

func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	if err := r.db.WithContext(ctx).Omit("Tags", "Author").Save(article).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *articleRepository) ReplaceTags(ctx context.Context, article *models.Article, tags []models.Tag) error {
	if err := r.db.WithContext(ctx).Model(article).Association("Tags").Replace(tags); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the article together with its comments, reactions and
// ratings. Tags survive; they have an independent lifecycle.
func (r *articleRepository) Delete(ctx context.Context, articleID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", articleID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", articleID).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", articleID).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM article_tags WHERE article_id = ?", articleID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Article{}, articleID).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *articleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Article{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
