package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the platform member profile. The admin backend treats users as
// read-only except for the role field consulted by the admin guard.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string         `gorm:"size:100" json:"name"`
	Username    string         `gorm:"size:50;uniqueIndex" json:"username"`
	Email       string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	Role        string         `gorm:"size:20;default:'user'" json:"role"`
	Avatar      string         `gorm:"size:500" json:"avatar"`
	Bio         string         `gorm:"type:text" json:"bio,omitempty"`
	IsVerified  bool           `gorm:"default:false" json:"is_verified"`
	CountryCode string         `gorm:"size:2;index" json:"country_code"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
