package server

import (
	"errors"

	"haven/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{Limit: limit, Offset: offset}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid comment ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// statusForError maps service error codes to HTTP statuses. Business-rule
// conflicts (duplicate reaction, already following) are contract-level 400s,
// not 409s.
func statusForError(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeValidation, models.CodeConflict:
		return fiber.StatusBadRequest
	case models.CodePermissionDenied:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the standard error shape with the mapped status.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, statusForError(err), err)
}

// currentProfile resolves the authenticated user's profile from locals.
func (s *Server) currentProfile(c *fiber.Ctx) (*models.Profile, error) {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return nil, models.NewPermissionDeniedError("You are not authenticated for the action")
	}
	return s.profileRepo.GetByUserID(c.Context(), userID)
}

// optionalProfileID resolves the viewer's profile ID when authenticated,
// zero otherwise.
func (s *Server) optionalProfileID(c *fiber.Ctx) uint {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return 0
	}
	profile, err := s.profileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		return 0
	}
	return profile.ID
}

func profileJSON(p *models.Profile) fiber.Map {
	return fiber.Map{
		"username":      p.User.Username,
		"bio":           p.Bio,
		"avatar":        p.AvatarOrDefault(),
		"reading_stats": p.ReadingStats,
	}
}

func articleJSON(a *models.Article) fiber.Map {
	return fiber.Map{
		"author":        profileJSON(&a.Author),
		"title":         a.Title,
		"description":   a.Description,
		"body":          a.Body,
		"createdAt":     a.CreatedAt,
		"updatedAt":     a.UpdatedAt,
		"slug":          a.Slug,
		"fav_count":     a.FavouriteCount,
		"likes":         a.Likes,
		"dislikes":      a.Dislikes,
		"tagList":       a.TagNames(),
		"reading_time":  a.ReadingTime,
		"comment_count": a.CommentCount,
		"rating":        a.Rating,
	}
}

func commentJSON(cm *models.Comment) fiber.Map {
	return fiber.Map{
		"id":           cm.ID,
		"body":         cm.Body,
		"author":       profileJSON(&cm.Author),
		"parent_id":    cm.ParentID,
		"thread_count": cm.ThreadCount,
		"createdAt":    cm.CreatedAt,
		"updatedAt":    cm.UpdatedAt,
	}
}

func commentListJSON(comments []*models.Comment) []fiber.Map {
	out := make([]fiber.Map, 0, len(comments))
	for _, cm := range comments {
		out = append(out, commentJSON(cm))
	}
	return out
}
