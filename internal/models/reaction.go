package models

import (
	"time"
)

// Reaction records one user's impression on one article.
// The (article_id, user_id) pair is unique: a user holds at most one reaction
// to an article at a time, whatever its kind. The constraint, not an
// application-level check, is what closes the double-react race.
type Reaction struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	ArticleID    uint           `gorm:"not null;uniqueIndex:idx_article_user" json:"article_id"`
	UserID       uint           `gorm:"not null;uniqueIndex:idx_article_user" json:"user_id"`
	ImpressionID uint           `gorm:"not null" json:"impression_id"`
	Kind         ImpressionKind `gorm:"type:varchar(20);not null" json:"kind"`
	CreatedAt    time.Time      `json:"created_at"`

	Article    Article    `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"-"`
	User       User       `gorm:"foreignKey:UserID" json:"-"`
	Impression Impression `gorm:"foreignKey:ImpressionID" json:"-"`
}
