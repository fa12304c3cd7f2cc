package service

import (
	"context"
	"strings"
	"testing"

	"haven/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_UpdateProfile(t *testing.T) {
	stored := &models.Profile{ID: 1, UserID: 10, Bio: "old bio", Avatar: "old.png"}
	var saved *models.Profile
	profileRepo := &profileRepoStub{
		getByUserIDFn: func(_ context.Context, _ uint) (*models.Profile, error) {
			return stored, nil
		},
		updateFn: func(_ context.Context, profile *models.Profile) error {
			saved = profile
			return nil
		},
	}
	svc := NewProfileService(profileRepo)

	profile, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: 10, Bio: "new bio",
	})
	require.NoError(t, err)
	assert.Equal(t, "new bio", profile.Bio)
	// Empty fields stay as they were.
	assert.Equal(t, "old.png", profile.Avatar)
	require.NotNil(t, saved)
}

func TestProfileService_UpdateProfile_BioTooLong(t *testing.T) {
	profileRepo := &profileRepoStub{
		getByUserIDFn: func(_ context.Context, _ uint) (*models.Profile, error) {
			return &models.Profile{ID: 1, UserID: 10}, nil
		},
	}
	svc := NewProfileService(profileRepo)

	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: 10, Bio: strings.Repeat("a", 501),
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func TestProfileService_GetProfile_Missing(t *testing.T) {
	profileRepo := &profileRepoStub{
		getByUsernameFn: func(_ context.Context, _ string) (*models.Profile, error) {
			return nil, models.NewNotFoundError("The user requested for does not exist")
		},
	}
	svc := NewProfileService(profileRepo)

	_, err := svc.GetProfile(context.Background(), "ghost")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
