package models

import (
	"time"
)

// Rating is a user's one-time score for an article, 1 through 5.
// The article's displayed rating is the average of these rows, computed at
// query time rather than stored.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"not null;uniqueIndex:idx_rating_article_user" json:"article_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_rating_article_user" json:"user_id"`
	Value     int       `gorm:"not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`

	Article Article `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
}
