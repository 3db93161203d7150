package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity visibility values.
var ActivityVisibilities = []string{"public", "private", "bond_only"}

// Activity is a scheduled social event. HiddenAt is the soft-hide marker:
// NULL means the activity shows up in default listings.
type Activity struct {
	ID              uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Title           string         `gorm:"size:255;not null;index" json:"title"`
	Description     string         `gorm:"type:text" json:"description"`
	Location        string         `gorm:"size:255;index" json:"location"`
	Latitude        *float64       `json:"latitude,omitempty"`
	Longitude       *float64       `json:"longitude,omitempty"`
	StartDate       time.Time      `gorm:"not null;index" json:"start_date"`
	EndDate         time.Time      `gorm:"not null;index" json:"end_date"`
	MaxParticipants int            `gorm:"default:0" json:"max_participants"`
	Visibility      string         `gorm:"size:20;default:'public';index" json:"visibility"`
	LikesCount      int            `gorm:"default:0" json:"likes_count"`
	HiddenAt        *time.Time     `gorm:"index" json:"hidden_at,omitempty"`
	CreatorID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"creator_id"`
	Creator         User           `gorm:"foreignKey:CreatorID" json:"-"`
	Interests       []Interest     `gorm:"many2many:activity_interests" json:"-"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// ActivityParticipant records a user joining an activity. CreatedAt is the
// join time used for the "most recently joined" ordering.
type ActivityParticipant struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ActivityID uint      `gorm:"not null;uniqueIndex:idx_activity_participant" json:"activity_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_activity_participant" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// ActivityOrganizer links co-organizers to an activity (the creator is not
// duplicated here).
type ActivityOrganizer struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ActivityID uint      `gorm:"not null;uniqueIndex:idx_activity_organizer" json:"activity_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_activity_organizer" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// ActivityLike tracks who liked an activity.
type ActivityLike struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ActivityID uint      `gorm:"not null;uniqueIndex:idx_activity_like" json:"activity_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_activity_like" json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// BondActivity links an activity to the bonds it is shared with.
type BondActivity struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	BondID     uint      `gorm:"not null;uniqueIndex:idx_bond_activity" json:"bond_id"`
	ActivityID uint      `gorm:"not null;uniqueIndex:idx_bond_activity" json:"activity_id"`
	CreatedAt  time.Time `json:"created_at"`
}
