package dto

import (
	"time"

	"github.com/google/uuid"
)

// Envelope is the uniform success envelope. Code is always 1 on success;
// errors use ErrorResponse with the HTTP status carrying the error class.
type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(message string, data interface{}) Envelope {
	return Envelope{Code: 1, Message: message, Data: data}
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// ListResult wraps a page of items with the pagination block and the names
// of the filters that actually contributed predicates.
type ListResult struct {
	Items          interface{} `json:"items"`
	Total          int64       `json:"total"`
	Page           int         `json:"page"`
	Limit          int         `json:"limit"`
	TotalPages     int64       `json:"total_pages"`
	AppliedFilters []string    `json:"applied_filters,omitempty"`
}

type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Username string    `json:"username"`
	Avatar   string    `json:"avatar"`
}

type InterestSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type BondSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// ActivityResponse is an activity row plus request-time derived fields.
// Most relation arrays are omitted when empty; Participants and Interests
// are always materialized, empty or not, because existing dashboard clients
// index into them unconditionally.
type ActivityResponse struct {
	ID                     uint              `json:"id"`
	Title                  string            `json:"title"`
	Description            string            `json:"description"`
	Location               string            `json:"location"`
	Latitude               *float64          `json:"latitude,omitempty"`
	Longitude              *float64          `json:"longitude,omitempty"`
	StartDate              time.Time         `json:"start_date"`
	EndDate                time.Time         `json:"end_date"`
	MaxParticipants        int               `json:"max_participants"`
	Visibility             string            `json:"visibility"`
	LikesCount             int               `json:"likes_count"`
	HiddenAt               *time.Time        `json:"hidden_at,omitempty"`
	CreatedAt              time.Time         `json:"created_at"`
	Creator                *UserSummary      `json:"creator,omitempty"`
	CoOrganizers           []UserSummary     `json:"co_organizers,omitempty"`
	Likers                 []UserSummary     `json:"likers,omitempty"`
	Bonds                  []BondSummary     `json:"bonds,omitempty"`
	Participants           []UserSummary     `json:"participants"`
	Interests              []InterestSummary `json:"interests"`
	TotalParticipantsCount int64             `json:"total_participants_count"`
	IsLiked                bool              `json:"is_liked"`
	IsOrganiser            bool              `json:"is_organiser"`
	HasJoined              bool              `json:"has_joined"`
}

// BondResponse mirrors ActivityResponse for bonds.
type BondResponse struct {
	ID                 uint              `json:"id"`
	Name               string            `json:"name"`
	City               string            `json:"city"`
	Description        string            `json:"description"`
	MaxMembers         int               `json:"max_members"`
	IsUnlimitedMembers bool              `json:"is_unlimited_members"`
	IsPrivate          bool              `json:"is_private"`
	RequiresApproval   bool              `json:"requires_approval"`
	Banner             string            `json:"banner,omitempty"`
	Rules              string            `json:"rules,omitempty"`
	IsTrending         bool              `json:"is_trending"`
	ViewCount          int               `json:"view_count"`
	MemberCount        int               `json:"member_count"`
	LikesCount         int               `json:"likes_count"`
	HiddenAt           *time.Time        `json:"hidden_at,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	Creator            *UserSummary      `json:"creator,omitempty"`
	CoOrganizers       []UserSummary     `json:"co_organizers,omitempty"`
	Likers             []UserSummary     `json:"likers,omitempty"`
	Members            []UserSummary     `json:"members"`
	Interests          []InterestSummary `json:"interests"`
	TotalMembersCount  int64             `json:"total_members_count"`
	IsLiked            bool              `json:"is_liked"`
	IsOrganiser        bool              `json:"is_organiser"`
	IsMember           bool              `json:"is_member"`
}

// UserAdminResponse is a user row plus per-user aggregate counts.
type UserAdminResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	Avatar          string    `json:"avatar"`
	Bio             string    `json:"bio,omitempty"`
	IsVerified      bool      `json:"is_verified"`
	CountryCode     string    `json:"country_code"`
	CreatedAt       time.Time `json:"created_at"`
	ActivitiesCount int64     `json:"activities_count"`
	BondsCount      int64     `json:"bonds_count"`
	ReportsAgainst  int64     `json:"reports_against"`
	FollowersCount  int64     `json:"followers_count"`
}
