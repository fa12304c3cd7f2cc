package models

import (
	"time"
)

// Tag is a shared label with get-or-create semantics. Tags are never deleted
// when articles are removed; their lifecycle is independent.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
