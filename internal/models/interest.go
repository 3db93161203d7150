package models

import "time"

// Interest is a taggable topic shared by activities and bonds.
type Interest struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Icon      string    `gorm:"size:500" json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
