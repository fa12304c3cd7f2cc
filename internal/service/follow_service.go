package service

import (
	"context"

	"haven/internal/middleware"
	"haven/internal/models"
	"haven/internal/notifications"
	"haven/internal/repository"
)

type FollowService struct {
	followRepo  repository.FollowRepository
	profileRepo repository.ProfileRepository
	notifier    *notifications.Notifier
}

func NewFollowService(
	followRepo repository.FollowRepository,
	profileRepo repository.ProfileRepository,
	notifier *notifications.Notifier,
) *FollowService {
	return &FollowService{
		followRepo:  followRepo,
		profileRepo: profileRepo,
		notifier:    notifier,
	}
}

// Follow makes the user behind followerUserID follow the named profile and
// returns that profile.
func (s *FollowService) Follow(ctx context.Context, followerUserID uint, username string) (*models.Profile, error) {
	follower, err := s.profileRepo.GetByUserID(ctx, followerUserID)
	if err != nil {
		return nil, err
	}
	followee, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if follower.ID == followee.ID {
		return nil, models.NewValidationError("You can not follow yourself")
	}

	if err := s.followRepo.Create(ctx, follower.ID, followee.ID); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if pubErr := s.notifier.NewFollower(ctx, followee.UserID, follower.User.Username); pubErr != nil {
			middleware.Logger.WarnContext(ctx, "Failed to publish follow event", "error", pubErr)
		}
	}

	followee.Following = true
	return followee, nil
}

// Unfollow removes the follow edge and returns the unfollowed profile.
// Self-unfollow needs no guard of its own: the edge can never exist, so it
// surfaces as the missing-edge conflict.
func (s *FollowService) Unfollow(ctx context.Context, followerUserID uint, username string) (*models.Profile, error) {
	follower, err := s.profileRepo.GetByUserID(ctx, followerUserID)
	if err != nil {
		return nil, err
	}
	followee, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.followRepo.Delete(ctx, follower.ID, followee.ID); err != nil {
		return nil, err
	}

	followee.Following = false
	return followee, nil
}

// Following lists the profiles the named user follows.
func (s *FollowService) Following(ctx context.Context, username string) ([]models.Profile, error) {
	profile, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowing(ctx, profile.ID)
}

// Followers lists the profiles following the named user.
func (s *FollowService) Followers(ctx context.Context, username string) ([]models.Profile, error) {
	profile, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowers(ctx, profile.ID)
}

// IsFollowing reports whether the user behind viewerUserID follows the profile.
func (s *FollowService) IsFollowing(ctx context.Context, viewerUserID uint, profileID uint) (bool, error) {
	if viewerUserID == 0 {
		return false, nil
	}
	viewer, err := s.profileRepo.GetByUserID(ctx, viewerUserID)
	if err != nil {
		return false, nil
	}
	return s.followRepo.Exists(ctx, viewer.ID, profileID)
}
