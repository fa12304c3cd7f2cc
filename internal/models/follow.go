package models

import (
	"time"
)

// Follow is one directed edge in the follow graph: follower reads followee.
// The relation is non-symmetric and irreflexive; the unique index keeps the
// edge single under concurrent follow calls, and the self-follow guard lives
// in the service layer.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follower_followee" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follower_followee" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower Profile `gorm:"foreignKey:FollowerID" json:"-"`
	Followee Profile `gorm:"foreignKey:FolloweeID" json:"-"`
}
