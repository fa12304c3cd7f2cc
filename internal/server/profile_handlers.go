package server

import (
	"haven/internal/models"
	"haven/internal/service"

	"github.com/gofiber/fiber/v2"
)

// profileWithFollowing decorates the profile shape with the viewer's follow state.
func profileWithFollowing(p *models.Profile, following bool) fiber.Map {
	out := profileJSON(p)
	out["following"] = following
	return out
}

// GetProfiles handles GET /api/profiles
func (s *Server) GetProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileService.ListProfiles(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	out := make([]fiber.Map, 0, len(profiles))
	for i := range profiles {
		out = append(out, profileJSON(&profiles[i]))
	}
	return c.JSON(fiber.Map{"profiles": out})
}

// GetProfile handles GET /api/profiles/:username
func (s *Server) GetProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetProfile(c.Context(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}

	following := false
	if userID, ok := c.Locals("userID").(uint); ok && userID != 0 {
		following, _ = s.followService.IsFollowing(c.Context(), userID, profile.ID)
	}

	return c.JSON(fiber.Map{"profile": profileWithFollowing(profile, following)})
}

// UpdateMyProfile handles PUT /api/profiles
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Profile struct {
			Bio    string `json:"bio"`
			Avatar string `json:"avatar"`
		} `json:"profile"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID: userID,
		Bio:    req.Profile.Bio,
		Avatar: req.Profile.Avatar,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"profile": profileJSON(profile)})
}

// FollowUser handles POST /api/profiles/:username/follow
func (s *Server) FollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := s.followService.Follow(c.Context(), userID, c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"profile": profileWithFollowing(profile, true)})
}

// UnfollowUser handles DELETE /api/profiles/:username/follow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := s.followService.Unfollow(c.Context(), userID, c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"profile": profileWithFollowing(profile, false)})
}

// GetFollowing handles GET /api/profiles/:username/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	profiles, err := s.followService.Following(c.Context(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}

	out := make([]fiber.Map, 0, len(profiles))
	for i := range profiles {
		out = append(out, profileJSON(&profiles[i]))
	}
	return c.JSON(fiber.Map{"profiles": out})
}

// GetFollowers handles GET /api/profiles/:username/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	profiles, err := s.followService.Followers(c.Context(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}

	out := make([]fiber.Map, 0, len(profiles))
	for i := range profiles {
		out = append(out, profileJSON(&profiles[i]))
	}
	return c.JSON(fiber.Map{"profiles": out})
}
