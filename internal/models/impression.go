package models

import "time"

// ImpressionKind enumerates the fixed, closed set of reaction kinds.
type ImpressionKind string

const (
	ImpressionLike      ImpressionKind = "Like"
	ImpressionDislike   ImpressionKind = "Dislike"
	ImpressionFavourite ImpressionKind = "Favourite"
)

// ParseImpressionKind validates a reaction name from the wire.
func ParseImpressionKind(name string) (ImpressionKind, bool) {
	switch ImpressionKind(name) {
	case ImpressionLike, ImpressionDislike, ImpressionFavourite:
		return ImpressionKind(name), true
	}
	return "", false
}

// Impression is a seeded row per reaction kind. The table is populated once at
// startup and is not user-extensible.
type Impression struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        ImpressionKind `gorm:"type:varchar(20);uniqueIndex;not null" json:"name"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
}
