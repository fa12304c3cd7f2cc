package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment belongs to an article and optionally to a parent comment.
// Nesting depth is capped at one: a comment whose parent is itself a reply can
// never be used as a parent. ThreadCount counts direct replies and is only
// meaningful on top-level comments.
type Comment struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Body        string   `gorm:"not null" json:"body"`
	AuthorID    uint     `gorm:"not null" json:"author_id"`
	Author      Profile  `gorm:"foreignKey:AuthorID" json:"author"`
	ArticleID   uint     `gorm:"not null;index" json:"article_id"`
	Article     Article  `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"-"`
	ParentID    *uint    `gorm:"index" json:"parent_id"`
	Parent      *Comment `gorm:"foreignKey:ParentID" json:"-"`
	ThreadCount int      `gorm:"not null;default:0" json:"thread_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsReply reports whether the comment is itself a threaded reply.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
