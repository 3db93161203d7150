package models

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a directed follower → followee edge, one row per pair.
type Follow struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair" json:"follower_id"`
	Follower   User      `gorm:"foreignKey:FollowerID" json:"-"`
	FolloweeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair" json:"followee_id"`
	Followee   User      `gorm:"foreignKey:FolloweeID" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
