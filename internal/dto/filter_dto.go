package dto

import "time"

// Filters are optional-field structs filled once at the handler boundary.
// A nil/zero field contributes no predicate: omission means "no constraint".

type ActivityFilter struct {
	Title           string
	Location        string
	Visibility      string
	Status          string
	Creator         string
	CreatorID       string
	InterestIDs     string
	BondIDs         string
	MinParticipants *int
	MaxParticipants *int
	MinLikes        *int
	MaxLikes        *int
	StartAfter      *time.Time
	StartBefore     *time.Time
	IncludeHidden   bool
	Q               string
	Page            int
	Limit           int
}

type BondFilter struct {
	Name          string
	City          string
	Creator       string
	CreatorID     string
	InterestIDs   string
	IsTrending    *bool
	IsPrivate     *bool
	MinMembers    *int
	MaxMembers    *int
	MinLikes      *int
	MaxLikes      *int
	IncludeHidden bool
	Q             string
	Page          int
	Limit         int
}

type ReportFilter struct {
	Status     string
	Reason     string
	ReporterID string
	SubjectID  string
	From       *time.Time
	To         *time.Time
	Page       int
	Limit      int
}

type UserFilter struct {
	Name        string
	Username    string
	Email       string
	CountryCode string
	IsVerified  *bool
	Q           string
	Page        int
	Limit       int
}
