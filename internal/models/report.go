package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Report statuses. Any status may follow any other; the review workflow is
// deliberately unconstrained.
const (
	ReportStatusPending   = "pending"
	ReportStatusReviewed  = "reviewed"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

// ReportReasons are the suggested reasons shown in the client. Reason is
// stored as free text, so values outside this list are accepted.
var ReportReasons = []string{
	"spam", "harassment", "inappropriate_content",
	"misleading", "safety_concern", "other",
}

func ValidReportStatus(s string) bool {
	switch s {
	case ReportStatusPending, ReportStatusReviewed, ReportStatusResolved, ReportStatusDismissed:
		return true
	}
	return false
}

// ActivityReport is a user report against an activity. One report per
// (activity, reporter) pair.
type ActivityReport struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ActivityID  uint           `gorm:"not null;uniqueIndex:idx_activity_report" json:"activity_id"`
	Activity    Activity       `gorm:"foreignKey:ActivityID" json:"-"`
	ReporterID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_activity_report" json:"reporter_id"`
	Reporter    User           `gorm:"foreignKey:ReporterID" json:"-"`
	Reason      string         `gorm:"size:100;not null" json:"reason"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Status      string         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Metadata    datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	ReviewedBy  *uuid.UUID     `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	AdminNotes  string         `gorm:"size:1000" json:"admin_notes,omitempty"`
	ReviewedAt  *time.Time     `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// BondReport is a user report against a bond.
type BondReport struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	BondID      uint           `gorm:"not null;uniqueIndex:idx_bond_report" json:"bond_id"`
	Bond        Bond           `gorm:"foreignKey:BondID" json:"-"`
	ReporterID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_bond_report" json:"reporter_id"`
	Reporter    User           `gorm:"foreignKey:ReporterID" json:"-"`
	Reason      string         `gorm:"size:100;not null" json:"reason"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Status      string         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Metadata    datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	ReviewedBy  *uuid.UUID     `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	AdminNotes  string         `gorm:"size:1000" json:"admin_notes,omitempty"`
	ReviewedAt  *time.Time     `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// UserReport is a user report against another user.
type UserReport struct {
	ID             uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ReportedUserID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_user_report" json:"reported_user_id"`
	ReportedUser   User           `gorm:"foreignKey:ReportedUserID" json:"-"`
	ReporterID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_user_report" json:"reporter_id"`
	Reporter       User           `gorm:"foreignKey:ReporterID" json:"-"`
	Reason         string         `gorm:"size:100;not null" json:"reason"`
	Description    string         `gorm:"type:text" json:"description,omitempty"`
	Status         string         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Metadata       datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	ReviewedBy     *uuid.UUID     `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	AdminNotes     string         `gorm:"size:1000" json:"admin_notes,omitempty"`
	ReviewedAt     *time.Time     `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
