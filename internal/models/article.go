package models

import (
	"time"

	"gorm.io/gorm"
)

// Article is the central publishing entity. Likes, Dislikes, FavouriteCount and
// CommentCount are denormalized counters whose source of truth is the set of live
// Reaction/Comment rows; every mutation of those rows adjusts the counter in the
// same transaction.
type Article struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Slug        string  `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string  `gorm:"not null" json:"title"`
	Description string  `json:"description"`
	Body        string  `gorm:"not null" json:"body"`
	AuthorID    uint    `gorm:"not null" json:"author_id"`
	Author      Profile `gorm:"foreignKey:AuthorID" json:"author"`
	Tags        []Tag   `gorm:"many2many:article_tags;" json:"tags,omitempty"`

	Likes          int    `gorm:"not null;default:0" json:"likes"`
	Dislikes       int    `gorm:"not null;default:0" json:"dislikes"`
	FavouriteCount int    `gorm:"not null;default:0" json:"fav_count"`
	CommentCount   int    `gorm:"not null;default:0" json:"comment_count"`
	ReadingTime    string `json:"reading_time"`

	// Rating is not persisted; average of Rating rows computed at query time
	Rating float64 `gorm:"->" json:"rating"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TagNames returns the article's tag names in load order.
func (a *Article) TagNames() []string {
	names := make([]string, 0, len(a.Tags))
	for _, t := range a.Tags {
		names = append(names, t.Name)
	}
	return names
}
