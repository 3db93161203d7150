package services

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"github.com/bondsio/admin-backend/internal/cache"
	"github.com/bondsio/admin-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// defaultTopCreators is the fallback ranking size when the caller gives
// none, and the limit whose cache entry the mutation paths invalidate.
const defaultTopCreators = 10

type StatusCount struct {
	Status string  `json:"status"`
	Count  int64   `json:"count"`
	Pct    float64 `json:"pct"`
}

type VisibilityCount struct {
	Visibility string  `json:"visibility"`
	Count      int64   `json:"count"`
	Pct        float64 `json:"pct"`
}

type ActivityStats struct {
	Total           int64             `json:"total"`
	Visible         int64             `json:"visible"`
	Hidden          int64             `json:"hidden"`
	HiddenPct       float64           `json:"hidden_pct"`
	Upcoming        int64             `json:"upcoming"`
	Ongoing         int64             `json:"ongoing"`
	Completed       int64             `json:"completed"`
	Expired         int64             `json:"expired"`
	ByVisibility    []VisibilityCount `json:"by_visibility"`
	AvgParticipants float64           `json:"avg_participants"`
}

type BondStats struct {
	Total          int64   `json:"total"`
	Visible        int64   `json:"visible"`
	Hidden         int64   `json:"hidden"`
	HiddenPct      float64 `json:"hidden_pct"`
	Trending       int64   `json:"trending"`
	TrendingPct    float64 `json:"trending_pct"`
	AvgMembers     float64 `json:"avg_members"`
	CapacityUsePct float64 `json:"capacity_use_pct"`
}

type ReportStats struct {
	Total      int64         `json:"total"`
	ByStatus   []StatusCount `json:"by_status"`
	PendingPct float64       `json:"pending_pct"`
}

type TopCreator struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Username        string    `json:"username"`
	Avatar          string    `json:"avatar"`
	TotalCount      int64     `json:"total_count"`
	TotalReach      int64     `json:"total_reach"`
	TotalLikes      int64     `json:"total_likes"`
	EngagementScore float64   `json:"engagement_score"`
}

// AnalyticsService computes dashboard aggregates. Every result is cached
// read-through with a short TTL; cache entries are advisory and are dropped
// by the write paths that would change them.
type AnalyticsService struct {
	db    *gorm.DB
	cache cache.Store
	ttl   time.Duration
}

func NewAnalyticsService(db *gorm.DB, store cache.Store, ttl time.Duration) *AnalyticsService {
	return &AnalyticsService{db: db, cache: store, ttl: ttl}
}

func (s *AnalyticsService) ActivityStats(ctx context.Context) (*ActivityStats, error) {
	key := cache.Key("stats:activities")
	if raw, ok := s.cache.Get(ctx, key); ok {
		var cached ActivityStats
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return &cached, nil
		}
	}

	stats := &ActivityStats{ByVisibility: []VisibilityCount{}}

	if err := s.db.Model(&models.Activity{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Activity{}).Where("hidden_at IS NULL").Count(&stats.Visible).Error; err != nil {
		return nil, err
	}
	stats.Hidden = stats.Total - stats.Visible
	stats.HiddenPct = Percentage(stats.Hidden, stats.Total)

	now := time.Now()
	for _, st := range []struct {
		name string
		dst  *int64
	}{
		{"upcoming", &stats.Upcoming},
		{"ongoing", &stats.Ongoing},
		{"completed", &stats.Completed},
		{"expired", &stats.Expired},
	} {
		cond, args, _ := StatusConditions(st.name, now)
		if err := s.db.Model(&models.Activity{}).Where("hidden_at IS NULL").Where(cond, args...).Count(st.dst).Error; err != nil {
			return nil, err
		}
	}

	var byVis []struct {
		Visibility string
		Count      int64
	}
	if err := s.db.Model(&models.Activity{}).
		Select("visibility, COUNT(*) AS count").
		Group("visibility").
		Order("count DESC").
		Scan(&byVis).Error; err != nil {
		return nil, err
	}
	for _, row := range byVis {
		stats.ByVisibility = append(stats.ByVisibility, VisibilityCount{
			Visibility: row.Visibility,
			Count:      row.Count,
			Pct:        Percentage(row.Count, stats.Total),
		})
	}

	var totalParticipants int64
	if err := s.db.Model(&models.ActivityParticipant{}).Count(&totalParticipants).Error; err != nil {
		return nil, err
	}
	if stats.Total > 0 {
		stats.AvgParticipants = Round2(float64(totalParticipants) / float64(stats.Total))
	}

	s.store(ctx, key, stats)
	return stats, nil
}

func (s *AnalyticsService) BondStats(ctx context.Context) (*BondStats, error) {
	key := cache.Key("stats:bonds")
	if raw, ok := s.cache.Get(ctx, key); ok {
		var cached BondStats
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return &cached, nil
		}
	}

	stats := &BondStats{}

	if err := s.db.Model(&models.Bond{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Bond{}).Where("hidden_at IS NULL").Count(&stats.Visible).Error; err != nil {
		return nil, err
	}
	stats.Hidden = stats.Total - stats.Visible
	stats.HiddenPct = Percentage(stats.Hidden, stats.Total)

	if err := s.db.Model(&models.Bond{}).Where("is_trending = ?", true).Count(&stats.Trending).Error; err != nil {
		return nil, err
	}
	stats.TrendingPct = Percentage(stats.Trending, stats.Total)

	var totalMembers int64
	if err := s.db.Model(&models.BondMember{}).Count(&totalMembers).Error; err != nil {
		return nil, err
	}
	if stats.Total > 0 {
		stats.AvgMembers = Round2(float64(totalMembers) / float64(stats.Total))
	}

	// Capacity utilization only counts bonds with a finite member cap.
	var capacity struct {
		Members  int64
		Capacity int64
	}
	if err := s.db.Model(&models.Bond{}).
		Select("COALESCE(SUM(member_count), 0) AS members, COALESCE(SUM(max_members), 0) AS capacity").
		Where("is_unlimited_members = ? AND max_members > 0", false).
		Scan(&capacity).Error; err != nil {
		return nil, err
	}
	stats.CapacityUsePct = Percentage(capacity.Members, capacity.Capacity)

	s.store(ctx, key, stats)
	return stats, nil
}

func (s *AnalyticsService) ReportStats(ctx context.Context) (*ReportStats, error) {
	key := cache.Key("stats:reports")
	if raw, ok := s.cache.Get(ctx, key); ok {
		var cached ReportStats
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return &cached, nil
		}
	}

	byStatus := map[string]int64{}
	for _, model := range []interface{}{
		&models.ActivityReport{}, &models.BondReport{}, &models.UserReport{},
	} {
		var rows []struct {
			Status string
			Count  int64
		}
		if err := s.db.Model(model).
			Select("status, COUNT(*) AS count").
			Group("status").
			Scan(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			byStatus[row.Status] += row.Count
		}
	}

	stats := &ReportStats{ByStatus: []StatusCount{}}
	for _, c := range byStatus {
		stats.Total += c
	}
	for _, status := range []string{
		models.ReportStatusPending, models.ReportStatusReviewed,
		models.ReportStatusResolved, models.ReportStatusDismissed,
	} {
		stats.ByStatus = append(stats.ByStatus, StatusCount{
			Status: status,
			Count:  byStatus[status],
			Pct:    Percentage(byStatus[status], stats.Total),
		})
	}
	stats.PendingPct = Percentage(byStatus[models.ReportStatusPending], stats.Total)

	s.store(ctx, key, stats)
	return stats, nil
}

// topCreatorsKey is the canonical cache key for a ranking request. The
// mutation paths invalidate the default-limit entry; other limits age out
// on TTL alone.
func topCreatorsKey(kind string, limit int) string {
	return cache.FilterKey("stats:top_creators", map[string]string{
		"kind":  kind,
		"limit": strconv.Itoa(limit),
	})
}

// TopCreators ranks creators by the fixed-weight engagement score. The
// underlying query orders by reach descending, which also settles score ties.
func (s *AnalyticsService) TopCreators(ctx context.Context, kind string, limit int) ([]TopCreator, error) {
	if limit < 1 || limit > MaxLimit {
		limit = defaultTopCreators
	}

	key := topCreatorsKey(kind, limit)
	if raw, ok := s.cache.Get(ctx, key); ok {
		var cached []TopCreator
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		}
	}

	var query string
	switch kind {
	case "bond":
		query = `
			SELECT u.id, u.name, u.username, u.avatar,
			       COUNT(DISTINCT b.id) AS total_count,
			       COALESCE(SUM(b.member_count), 0) AS total_reach,
			       COALESCE(SUM(b.likes_count), 0) AS total_likes
			FROM users u
			JOIN bonds b ON b.creator_id = u.id AND b.deleted_at IS NULL
			GROUP BY u.id, u.name, u.username, u.avatar
			ORDER BY total_reach DESC
			LIMIT ?
		`
	default:
		query = `
			SELECT u.id, u.name, u.username, u.avatar,
			       COUNT(DISTINCT a.id) AS total_count,
			       COALESCE((SELECT COUNT(*) FROM activity_participants ap
			                 JOIN activities a2 ON a2.id = ap.activity_id
			                 WHERE a2.creator_id = u.id AND a2.deleted_at IS NULL), 0) AS total_reach,
			       COALESCE(SUM(a.likes_count), 0) AS total_likes
			FROM users u
			JOIN activities a ON a.creator_id = u.id AND a.deleted_at IS NULL
			GROUP BY u.id, u.name, u.username, u.avatar
			ORDER BY total_reach DESC
			LIMIT ?
		`
	}

	var creators []TopCreator
	if err := s.db.Raw(query, limit).Scan(&creators).Error; err != nil {
		return nil, err
	}

	for i := range creators {
		creators[i].EngagementScore = EngagementScore(
			creators[i].TotalCount, creators[i].TotalReach, creators[i].TotalLikes)
	}
	sort.SliceStable(creators, func(i, j int) bool {
		return creators[i].EngagementScore > creators[j].EngagementScore
	})

	s.store(ctx, key, creators)
	return creators, nil
}

func (s *AnalyticsService) store(ctx context.Context, key string, v interface{}) {
	if raw, err := json.Marshal(v); err == nil {
		s.cache.Set(ctx, key, string(raw), s.ttl)
	}
}
