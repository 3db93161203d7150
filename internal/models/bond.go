package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bond is a member group. MemberCount/LikesCount are denormalized counters
// maintained by the product backend; the admin side reads them as-is.
type Bond struct {
	ID                 uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name               string         `gorm:"size:255;not null;index" json:"name"`
	City               string         `gorm:"size:100;index" json:"city"`
	Description        string         `gorm:"type:text" json:"description"`
	MaxMembers         int            `gorm:"default:0" json:"max_members"`
	IsUnlimitedMembers bool           `gorm:"default:false" json:"is_unlimited_members"`
	IsPrivate          bool           `gorm:"default:false" json:"is_private"`
	RequiresApproval   bool           `gorm:"default:false" json:"requires_approval"`
	Banner             string         `gorm:"size:500" json:"banner,omitempty"`
	Rules              string         `gorm:"type:text" json:"rules,omitempty"`
	IsTrending         bool           `gorm:"default:false;index" json:"is_trending"`
	ViewCount          int            `gorm:"default:0" json:"view_count"`
	MemberCount        int            `gorm:"default:0" json:"member_count"`
	LikesCount         int            `gorm:"default:0" json:"likes_count"`
	HiddenAt           *time.Time     `gorm:"index" json:"hidden_at,omitempty"`
	CreatorID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"creator_id"`
	Creator            User           `gorm:"foreignKey:CreatorID" json:"-"`
	Interests          []Interest     `gorm:"many2many:bond_interests" json:"-"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// BondMember records group membership. CreatedAt is the join time.
type BondMember struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	BondID    uint      `gorm:"not null;uniqueIndex:idx_bond_member" json:"bond_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bond_member" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// BondOrganizer links co-organizers to a bond.
type BondOrganizer struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	BondID    uint      `gorm:"not null;uniqueIndex:idx_bond_organizer" json:"bond_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bond_organizer" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// BondLike tracks who liked a bond.
type BondLike struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	BondID    uint      `gorm:"not null;uniqueIndex:idx_bond_like" json:"bond_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bond_like" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
