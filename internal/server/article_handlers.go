package server

import (
	"haven/internal/models"
	"haven/internal/service"

	"github.com/gofiber/fiber/v2"
)

type articleRequest struct {
	Article struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Body        string    `json:"body"`
		TagList     *[]string `json:"tagList"`
	} `json:"article"`
}

// CreateArticle handles POST /api/articles
func (s *Server) CreateArticle(c *fiber.Ctx) error {
	author, err := s.currentProfile(c)
	if err != nil {
		return respondError(c, err)
	}

	var req articleRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var tags []string
	if req.Article.TagList != nil {
		tags = *req.Article.TagList
	}

	article, err := s.articleService.CreateArticle(c.Context(), service.CreateArticleInput{
		AuthorID:    author.ID,
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
		Tags:        tags,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"article": articleJSON(article)})
}

// GetArticles handles GET /api/articles
func (s *Server) GetArticles(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	articles, err := s.articleService.ListArticles(c.Context(), service.ListArticlesInput{
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}

	out := make([]fiber.Map, 0, len(articles))
	for _, article := range articles {
		out = append(out, articleJSON(article))
	}
	return c.JSON(fiber.Map{"articles": out, "articlesCount": len(out)})
}

// GetArticle handles GET /api/articles/:slug. Authenticated readers other than
// the author accumulate the article's reading time into their stats.
func (s *Server) GetArticle(c *fiber.Ctx) error {
	readerProfileID := s.optionalProfileID(c)

	article, err := s.articleService.GetArticle(c.Context(), c.Params("slug"), readerProfileID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"article": articleJSON(article)})
}

// UpdateArticle handles PUT /api/articles/:slug
func (s *Server) UpdateArticle(c *fiber.Ctx) error {
	author, err := s.currentProfile(c)
	if err != nil {
		return respondError(c, err)
	}

	var req articleRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	article, err := s.articleService.UpdateArticle(c.Context(), service.UpdateArticleInput{
		AuthorID:    author.ID,
		Slug:        c.Params("slug"),
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
		Tags:        req.Article.TagList,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"article": articleJSON(article)})
}

// DeleteArticle handles DELETE /api/articles/:slug
func (s *Server) DeleteArticle(c *fiber.Ctx) error {
	author, err := s.currentProfile(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.articleService.DeleteArticle(c.Context(), c.Params("slug"), author.ID); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RateArticle handles POST /api/articles/:slug/rate
func (s *Server) RateArticle(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Rate int `json:"rate"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	article, err := s.ratingService.Rate(c.Context(), c.Params("slug"), userID, req.Rate)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"article": articleJSON(article)})
}

// ShareArticle handles POST /api/articles/:slug/share
func (s *Server) ShareArticle(c *fiber.Ctx) error {
	sender, err := s.currentProfile(c)
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		ShareWith string `json:"share_with"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.articleService.ShareArticle(c.Context(), service.ShareArticleInput{
		Slug:            c.Params("slug"),
		SenderProfileID: sender.ID,
		Recipient:       req.ShareWith,
	}); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Article successfully shared with " + req.ShareWith})
}

// GetTags handles GET /api/tags
func (s *Server) GetTags(c *fiber.Ctx) error {
	tags, err := s.articleService.ListTags(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return c.JSON(fiber.Map{"tags": names})
}
