package service

import (
	"context"

	"haven/internal/mail"
	"haven/internal/middleware"
	"haven/internal/models"
	"haven/internal/notifications"
	"haven/internal/readtime"
	"haven/internal/repository"
	"haven/internal/validation"
)

type ArticleService struct {
	articleRepo repository.ArticleRepository
	tagRepo     repository.TagRepository
	profileRepo repository.ProfileRepository
	notifier    *notifications.Notifier
	mailer      mail.Mailer
	appHost     string
}

type CreateArticleInput struct {
	AuthorID    uint
	Title       string
	Description string
	Body        string
	Tags        []string
}

type UpdateArticleInput struct {
	AuthorID    uint
	Slug        string
	Title       string
	Description string
	Body        string
	Tags        *[]string
}

type ListArticlesInput struct {
	Limit  int
	Offset int
}

type ShareArticleInput struct {
	Slug            string
	SenderProfileID uint
	Recipient       string
}

func NewArticleService(
	articleRepo repository.ArticleRepository,
	tagRepo repository.TagRepository,
	profileRepo repository.ProfileRepository,
	notifier *notifications.Notifier,
	mailer mail.Mailer,
	appHost string,
) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
		tagRepo:     tagRepo,
		profileRepo: profileRepo,
		notifier:    notifier,
		mailer:      mailer,
		appHost:     appHost,
	}
}

const (
	maxTitleLen       = 300
	maxDescriptionLen = 500
)

func (s *ArticleService) CreateArticle(ctx context.Context, in CreateArticleInput) (*models.Article, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if len(in.Description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 500 characters)")
	}
	if in.Body == "" {
		return nil, models.NewValidationError("Body is required")
	}

	slug, err := uniqueSlug(ctx, s.articleRepo, Slugify(in.Title))
	if err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(ctx, in.Tags)
	if err != nil {
		return nil, err
	}

	article := &models.Article{
		Slug:        slug,
		Title:       in.Title,
		Description: in.Description,
		Body:        in.Body,
		AuthorID:    in.AuthorID,
		Tags:        tags,
		ReadingTime: readtime.Estimate(in.Body),
	}
	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}

	created, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if pubErr := s.notifier.ArticlePublished(ctx, created.Author.User.Username, created.Slug, created.Title); pubErr != nil {
			middleware.Logger.WarnContext(ctx, "Failed to publish article event", "error", pubErr)
		}
	}

	return created, nil
}

// GetArticle fetches an article by slug. A read by anyone other than the
// author also rolls the article's reading time into the reader's cumulative
// stats; a failure there never fails the read itself.
func (s *ArticleService) GetArticle(ctx context.Context, slug string, readerProfileID uint) (*models.Article, error) {
	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if readerProfileID != 0 && readerProfileID != article.AuthorID {
		minutes := readtime.ParseMinutes(article.ReadingTime)
		if statsErr := s.profileRepo.RecordReading(ctx, readerProfileID, minutes); statsErr != nil {
			middleware.Logger.WarnContext(ctx, "Failed to update reading stats", "error", statsErr)
		}
	}

	return article, nil
}

func (s *ArticleService) ListArticles(ctx context.Context, in ListArticlesInput) ([]*models.Article, error) {
	limit := in.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}
	return s.articleRepo.List(ctx, limit, offset)
}

func (s *ArticleService) UpdateArticle(ctx context.Context, in UpdateArticleInput) (*models.Article, error) {
	article, err := s.articleRepo.GetBySlugForAuthor(ctx, in.Slug, in.AuthorID)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		if len(in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		article.Title = in.Title
	}
	if in.Description != "" {
		if len(in.Description) > maxDescriptionLen {
			return nil, models.NewValidationError("Description too long (max 500 characters)")
		}
		article.Description = in.Description
	}
	if in.Body != "" && in.Body != article.Body {
		article.Body = in.Body
		// The estimate only moves when the text does.
		article.ReadingTime = readtime.Estimate(in.Body)
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}

	if in.Tags != nil {
		tags, err := s.resolveTags(ctx, *in.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.articleRepo.ReplaceTags(ctx, article, tags); err != nil {
			return nil, err
		}
	}

	return s.articleRepo.GetBySlug(ctx, in.Slug)
}

func (s *ArticleService) DeleteArticle(ctx context.Context, slug string, authorID uint) error {
	article, err := s.articleRepo.GetBySlugForAuthor(ctx, slug, authorID)
	if err != nil {
		return err
	}
	return s.articleRepo.Delete(ctx, article.ID)
}

// ShareArticle emails an article link to a recipient on behalf of the sender.
func (s *ArticleService) ShareArticle(ctx context.Context, in ShareArticleInput) error {
	if err := validation.ValidateEmail(in.Recipient); err != nil {
		return models.NewValidationError(err.Error())
	}
	if s.mailer == nil {
		return models.NewValidationError("Sharing by email is not available")
	}

	article, err := s.articleRepo.GetBySlug(ctx, in.Slug)
	if err != nil {
		return err
	}
	sender, err := s.profileRepo.GetByID(ctx, in.SenderProfileID)
	if err != nil {
		return err
	}

	subject := mail.ShareSubject(sender.User.Username)
	body := mail.ShareBody(sender.User.Username, article.Title, mail.ArticleLink(s.appHost, article.Slug))
	if err := s.mailer.Send(ctx, in.Recipient, subject, body); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListTags returns every tag ever attached to an article.
func (s *ArticleService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tagRepo.List(ctx)
}

func (s *ArticleService) resolveTags(ctx context.Context, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	seen := map[string]struct{}{}
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		tag, err := s.tagRepo.GetOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}
