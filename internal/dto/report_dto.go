package dto

import (
	"time"

	"github.com/google/uuid"
)

type ReviewReportRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// ReportResponse is shared by the three report kinds; SubjectID carries the
// activity/bond id, or the reported user's UUID as a string.
type ReportResponse struct {
	ID          uint         `json:"id"`
	SubjectID   string       `json:"subject_id"`
	SubjectName string       `json:"subject_name,omitempty"`
	Reporter    *UserSummary `json:"reporter,omitempty"`
	Reason      string       `json:"reason"`
	Description string       `json:"description,omitempty"`
	Status      string       `json:"status"`
	ReviewedBy  *uuid.UUID   `json:"reviewed_by,omitempty"`
	AdminNotes  string       `json:"admin_notes,omitempty"`
	ReviewedAt  *time.Time   `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}
