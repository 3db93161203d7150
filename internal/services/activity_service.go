package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/bondsio/admin-backend/internal/cache"
	"github.com/bondsio/admin-backend/internal/dto"
	"github.com/bondsio/admin-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrBondNotFound     = errors.New("bond not found")
)

// recentParticipants is how many most-recently-joined members are embedded
// per row.
const recentParticipants = 5

const detailCacheTTL = 5 * time.Minute

// ActivityService composes admin search queries over activities and
// augments rows with derived fields.
type ActivityService struct {
	db    *gorm.DB
	cache cache.Store
}

func NewActivityService(db *gorm.DB, store cache.Store) *ActivityService {
	return &ActivityService{db: db, cache: store}
}

// applyFilters turns the present fields of f into ANDed predicates and
// reports which filter names were applied.
func (s *ActivityService) applyFilters(q *gorm.DB, f *dto.ActivityFilter) (*gorm.DB, []string) {
	applied := []string{}

	if f.Title != "" {
		q = q.Where("activities.title LIKE ?", Like(f.Title))
		applied = append(applied, "title")
	}
	if f.Location != "" {
		q = q.Where("activities.location LIKE ?", Like(f.Location))
		applied = append(applied, "location")
	}
	if f.Visibility != "" {
		q = q.Where("activities.visibility = ?", f.Visibility)
		applied = append(applied, "visibility")
	}
	if f.Status != "" {
		if cond, args, ok := StatusConditions(f.Status, time.Now()); ok {
			q = q.Where(cond, args...)
			applied = append(applied, "status")
		}
	}
	if f.Creator != "" {
		q = q.Where("activities.creator_id IN (SELECT id FROM users WHERE name LIKE ? OR username LIKE ?)",
			Like(f.Creator), Like(f.Creator))
		applied = append(applied, "creator")
	}
	if f.CreatorID != "" {
		if id, err := uuid.Parse(f.CreatorID); err == nil {
			q = q.Where("activities.creator_id = ?", id)
			applied = append(applied, "creator_id")
		}
	}
	if ids := ParseIDList(f.InterestIDs); len(ids) > 0 {
		q = q.Where("activities.id IN (SELECT activity_id FROM activity_interests WHERE interest_id IN ?)", ids)
		applied = append(applied, "interest_ids")
	}
	if ids := ParseIDList(f.BondIDs); len(ids) > 0 {
		q = q.Where("activities.id IN (SELECT activity_id FROM bond_activities WHERE bond_id IN ?)", ids)
		applied = append(applied, "bond_ids")
	}
	if f.MinParticipants != nil {
		q = q.Where("(SELECT COUNT(*) FROM activity_participants ap WHERE ap.activity_id = activities.id) >= ?", *f.MinParticipants)
		applied = append(applied, "min_participants")
	}
	if f.MaxParticipants != nil {
		q = q.Where("(SELECT COUNT(*) FROM activity_participants ap WHERE ap.activity_id = activities.id) <= ?", *f.MaxParticipants)
		applied = append(applied, "max_participants")
	}
	if f.MinLikes != nil {
		q = q.Where("activities.likes_count >= ?", *f.MinLikes)
		applied = append(applied, "min_likes")
	}
	if f.MaxLikes != nil {
		q = q.Where("activities.likes_count <= ?", *f.MaxLikes)
		applied = append(applied, "max_likes")
	}
	if f.StartAfter != nil {
		q = q.Where("activities.start_date >= ?", *f.StartAfter)
		applied = append(applied, "start_after")
	}
	if f.StartBefore != nil {
		q = q.Where("activities.start_date <= ?", *f.StartBefore)
		applied = append(applied, "start_before")
	}
	if f.Q != "" {
		like := Like(f.Q)
		q = q.Where("(activities.title LIKE ? OR activities.description LIKE ? OR activities.location LIKE ?)", like, like, like)
		applied = append(applied, "q")
	}
	if !f.IncludeHidden {
		q = q.Where("activities.hidden_at IS NULL")
	} else {
		applied = append(applied, "include_hidden")
	}

	return q, applied
}

// Search runs the composed query with pagination. Count and page share the
// same predicate set so total never drifts from the returned rows.
func (s *ActivityService) Search(f *dto.ActivityFilter, viewerID *uuid.UUID) ([]dto.ActivityResponse, int64, []string, error) {
	query, applied := s.applyFilters(s.db.Model(&models.Activity{}), f)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, nil, err
	}

	_, limit, offset := Paginate(f.Page, f.Limit)

	var activities []models.Activity
	err := query.Preload("Interests").Preload("Creator").
		Order("activities.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, 0, nil, err
	}

	items := make([]dto.ActivityResponse, 0, len(activities))
	for i := range activities {
		items = append(items, s.enrich(&activities[i], viewerID, false))
	}
	return items, total, applied, nil
}

// GetByID loads one activity with full enrichment. Admin lookups (no viewer)
// are served read-through from the cache.
func (s *ActivityService) GetByID(ctx context.Context, id uint, viewerID *uuid.UUID) (*dto.ActivityResponse, error) {
	key := cache.Key("activity", strconv.FormatUint(uint64(id), 10))
	if viewerID == nil {
		if raw, ok := s.cache.Get(ctx, key); ok {
			var cached dto.ActivityResponse
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	var activity models.Activity
	err := s.db.Preload("Interests").Preload("Creator").First(&activity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}

	resp := s.enrich(&activity, viewerID, true)

	if viewerID == nil {
		if raw, err := json.Marshal(resp); err == nil {
			s.cache.Set(ctx, key, string(raw), detailCacheTTL)
		}
	}
	return &resp, nil
}

// Hide soft-hides an activity. Calling it twice is harmless: the second call
// reports the existing state without touching hidden_at.
func (s *ActivityService) Hide(ctx context.Context, id uint) (string, error) {
	var activity models.Activity
	if err := s.db.First(&activity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrActivityNotFound
		}
		return "", err
	}

	if activity.HiddenAt != nil {
		return "activity already hidden", nil
	}

	now := time.Now()
	if err := s.db.Model(&activity).Update("hidden_at", now).Error; err != nil {
		return "", err
	}

	s.invalidate(ctx, id)
	return "activity hidden", nil
}

// Unhide clears the soft-hide marker, idempotently.
func (s *ActivityService) Unhide(ctx context.Context, id uint) (string, error) {
	var activity models.Activity
	if err := s.db.First(&activity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrActivityNotFound
		}
		return "", err
	}

	if activity.HiddenAt == nil {
		return "activity is not hidden", nil
	}

	if err := s.db.Model(&activity).Update("hidden_at", nil).Error; err != nil {
		return "", err
	}

	s.invalidate(ctx, id)
	return "activity unhidden", nil
}

// Delete soft-deletes an activity and drops its cache entries.
func (s *ActivityService) Delete(ctx context.Context, id uint) error {
	result := s.db.Delete(&models.Activity{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrActivityNotFound
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ActivityService) invalidate(ctx context.Context, id uint) {
	s.cache.Delete(ctx,
		cache.Key("activity", strconv.FormatUint(uint64(id), 10)),
		cache.Key("stats:activities"),
		topCreatorsKey("activity", defaultTopCreators),
	)
}

// enrich builds the response row with derived fields. Participants and
// Interests are always materialized; the other relation arrays stay empty
// (and drop out of the JSON) unless rows exist.
func (s *ActivityService) enrich(a *models.Activity, viewerID *uuid.UUID, withLikers bool) dto.ActivityResponse {
	resp := dto.ActivityResponse{
		ID:              a.ID,
		Title:           a.Title,
		Description:     a.Description,
		Location:        a.Location,
		Latitude:        a.Latitude,
		Longitude:       a.Longitude,
		StartDate:       a.StartDate,
		EndDate:         a.EndDate,
		MaxParticipants: a.MaxParticipants,
		Visibility:      a.Visibility,
		LikesCount:      a.LikesCount,
		HiddenAt:        a.HiddenAt,
		CreatedAt:       a.CreatedAt,
		Participants:    []dto.UserSummary{},
		Interests:       make([]dto.InterestSummary, 0, len(a.Interests)),
	}

	for _, it := range a.Interests {
		resp.Interests = append(resp.Interests, dto.InterestSummary{ID: it.ID, Name: it.Name})
	}
	if a.Creator.ID != uuid.Nil {
		resp.Creator = &dto.UserSummary{
			ID:       a.Creator.ID,
			Name:     a.Creator.Name,
			Username: a.Creator.Username,
			Avatar:   a.Creator.Avatar,
		}
	}

	var participants []dto.UserSummary
	if err := s.db.Table("activity_participants ap").
		Select("u.id, u.name, u.username, u.avatar").
		Joins("JOIN users u ON u.id = ap.user_id").
		Where("ap.activity_id = ?", a.ID).
		Order("ap.created_at DESC").
		Limit(recentParticipants).
		Scan(&participants).Error; err != nil {
		slog.Error("failed to load recent participants", "activity_id", a.ID, "error", err)
	}
	if len(participants) > 0 {
		resp.Participants = participants
	}

	if err := s.db.Model(&models.ActivityParticipant{}).
		Where("activity_id = ?", a.ID).
		Distinct("user_id").
		Count(&resp.TotalParticipantsCount).Error; err != nil {
		slog.Error("failed to count participants", "activity_id", a.ID, "error", err)
	}

	var organizers []dto.UserSummary
	if err := s.db.Table("activity_organizers ao").
		Select("u.id, u.name, u.username, u.avatar").
		Joins("JOIN users u ON u.id = ao.user_id").
		Where("ao.activity_id = ?", a.ID).
		Scan(&organizers).Error; err != nil {
		slog.Error("failed to load co-organizers", "activity_id", a.ID, "error", err)
	}
	resp.CoOrganizers = organizers

	var bonds []dto.BondSummary
	if err := s.db.Table("bond_activities ba").
		Select("b.id, b.name, b.city").
		Joins("JOIN bonds b ON b.id = ba.bond_id").
		Where("ba.activity_id = ?", a.ID).
		Scan(&bonds).Error; err != nil {
		slog.Error("failed to load linked bonds", "activity_id", a.ID, "error", err)
	}
	resp.Bonds = bonds

	if withLikers {
		var likers []dto.UserSummary
		if err := s.db.Table("activity_likes al").
			Select("u.id, u.name, u.username, u.avatar").
			Joins("JOIN users u ON u.id = al.user_id").
			Where("al.activity_id = ?", a.ID).
			Order("al.created_at DESC").
			Limit(10).
			Scan(&likers).Error; err != nil {
			slog.Error("failed to load likers", "activity_id", a.ID, "error", err)
		}
		resp.Likers = likers
	}

	if viewerID != nil {
		var n int64
		s.db.Model(&models.ActivityLike{}).
			Where("activity_id = ? AND user_id = ?", a.ID, *viewerID).
			Count(&n)
		resp.IsLiked = n > 0

		n = 0
		s.db.Model(&models.ActivityParticipant{}).
			Where("activity_id = ? AND user_id = ?", a.ID, *viewerID).
			Count(&n)
		resp.HasJoined = n > 0

		if a.CreatorID == *viewerID {
			resp.IsOrganiser = true
		} else {
			n = 0
			s.db.Model(&models.ActivityOrganizer{}).
				Where("activity_id = ? AND user_id = ?", a.ID, *viewerID).
				Count(&n)
			resp.IsOrganiser = n > 0
		}
	}

	return resp
}
