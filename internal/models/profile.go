package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultAvatar is served whenever a profile has no avatar of its own.
const DefaultAvatar = "https://pixabay.com/en/user-person-people-profile-account-1633249/"

// DefaultReadingStats is the reading-stats string for a profile that has read nothing yet.
const DefaultReadingStats = "0 minutes"

// Profile is the public face of a user. Created exactly once per user at signup.
// ReadingStats is a denormalized, formatted total of estimated minutes spent
// reading other authors' articles.
type Profile struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UserID       uint   `gorm:"not null;uniqueIndex" json:"user_id"`
	User         User   `gorm:"foreignKey:UserID" json:"-"`
	Bio          string `json:"bio"`
	Avatar       string `json:"avatar"`
	ReadingStats string `gorm:"default:'0 minutes'" json:"reading_stats"`
	// Following is not persisted; set per request for the viewing user
	Following bool           `gorm:"-" json:"following"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// AvatarOrDefault returns the profile avatar, falling back to the placeholder.
func (p *Profile) AvatarOrDefault() string {
	if p.Avatar != "" {
		return p.Avatar
	}
	return DefaultAvatar
}
