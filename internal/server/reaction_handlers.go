package server

import (
	"fmt"

	"haven/internal/models"
	"haven/internal/service"

	"github.com/gofiber/fiber/v2"
)

type reactionRequest struct {
	Reaction string `json:"reaction"`
}

// ReactToArticle handles POST /api/articles/:slug/reaction
func (s *Server) ReactToArticle(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req reactionRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	article, err := s.reactionService.React(c.Context(), service.ReactInput{
		Slug:   c.Params("slug"),
		UserID: userID,
		Kind:   req.Reaction,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("You have %sd this article.", req.Reaction),
		"article": articleJSON(article),
	})
}

// RemoveReaction handles DELETE /api/articles/:slug/reaction
func (s *Server) RemoveReaction(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req reactionRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.reactionService.RemoveReaction(c.Context(), service.ReactInput{
		Slug:   c.Params("slug"),
		UserID: userID,
		Kind:   req.Reaction,
	}); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
