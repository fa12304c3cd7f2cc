package server

import (
	"haven/internal/models"
	"haven/internal/service"

	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	Comment struct {
		Body string `json:"body"`
	} `json:"comment"`
}

// CreateComment handles POST /api/articles/:slug/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	author, err := s.currentProfile(c)
	if err != nil {
		return respondError(c, err)
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		Slug:     c.Params("slug"),
		AuthorID: author.ID,
		Body:     req.Comment.Body,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": commentJSON(comment)})
}

// GetComments handles GET /api/articles/:slug/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	comments, err := s.commentService.ListComments(c.Context(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"comments": commentListJSON(comments)})
}

// UpdateComment handles PUT /api/articles/:slug/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	author, err := s.currentProfile(c)
	if err != nil {
		return respondError(c, err)
	}

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.Context(), service.UpdateCommentInput{
		Slug:      c.Params("slug"),
		CommentID: commentID,
		AuthorID:  author.ID,
		Body:      req.Comment.Body,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"comment": commentJSON(comment)})
}

// DeleteComment handles DELETE /api/articles/:slug/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	author, err := s.currentProfile(c)
	if err != nil {
		return respondError(c, err)
	}

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.Context(), service.DeleteCommentInput{
		Slug:      c.Params("slug"),
		CommentID: commentID,
		AuthorID:  author.ID,
	}); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetCommentThread handles GET /api/articles/:slug/comments/:id/thread
func (s *Server) GetCommentThread(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, replies, err := s.commentService.GetComment(c.Context(), c.Params("slug"), commentID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"comment": commentJSON(comment),
		"thread":  commentListJSON(replies),
	})
}

// CreateThreadReply handles POST /api/articles/:slug/comments/:id/thread
func (s *Server) CreateThreadReply(c *fiber.Ctx) error {
	author, err := s.currentProfile(c)
	if err != nil {
		return respondError(c, err)
	}

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	reply, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		Slug:     c.Params("slug"),
		AuthorID: author.ID,
		Body:     req.Comment.Body,
		ParentID: &commentID,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": commentJSON(reply)})
}
