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

// recentMembers mirrors recentParticipants for bond rows.
const recentMembers = 5

// BondService composes admin search queries over bonds.
type BondService struct {
	db    *gorm.DB
	cache cache.Store
}

func NewBondService(db *gorm.DB, store cache.Store) *BondService {
	return &BondService{db: db, cache: store}
}

func (s *BondService) applyFilters(q *gorm.DB, f *dto.BondFilter) (*gorm.DB, []string) {
	applied := []string{}

	if f.Name != "" {
		q = q.Where("bonds.name LIKE ?", Like(f.Name))
		applied = append(applied, "name")
	}
	if f.City != "" {
		q = q.Where("bonds.city LIKE ?", Like(f.City))
		applied = append(applied, "city")
	}
	if f.Creator != "" {
		q = q.Where("bonds.creator_id IN (SELECT id FROM users WHERE name LIKE ? OR username LIKE ?)",
			Like(f.Creator), Like(f.Creator))
		applied = append(applied, "creator")
	}
	if f.CreatorID != "" {
		if id, err := uuid.Parse(f.CreatorID); err == nil {
			q = q.Where("bonds.creator_id = ?", id)
			applied = append(applied, "creator_id")
		}
	}
	if ids := ParseIDList(f.InterestIDs); len(ids) > 0 {
		q = q.Where("bonds.id IN (SELECT bond_id FROM bond_interests WHERE interest_id IN ?)", ids)
		applied = append(applied, "interest_ids")
	}
	if f.IsTrending != nil {
		q = q.Where("bonds.is_trending = ?", *f.IsTrending)
		applied = append(applied, "is_trending")
	}
	if f.IsPrivate != nil {
		q = q.Where("bonds.is_private = ?", *f.IsPrivate)
		applied = append(applied, "is_private")
	}
	if f.MinMembers != nil {
		q = q.Where("bonds.member_count >= ?", *f.MinMembers)
		applied = append(applied, "min_members")
	}
	if f.MaxMembers != nil {
		q = q.Where("bonds.member_count <= ?", *f.MaxMembers)
		applied = append(applied, "max_members")
	}
	if f.MinLikes != nil {
		q = q.Where("bonds.likes_count >= ?", *f.MinLikes)
		applied = append(applied, "min_likes")
	}
	if f.MaxLikes != nil {
		q = q.Where("bonds.likes_count <= ?", *f.MaxLikes)
		applied = append(applied, "max_likes")
	}
	if f.Q != "" {
		like := Like(f.Q)
		q = q.Where("(bonds.name LIKE ? OR bonds.description LIKE ? OR bonds.city LIKE ?)", like, like, like)
		applied = append(applied, "q")
	}
	if !f.IncludeHidden {
		q = q.Where("bonds.hidden_at IS NULL")
	} else {
		applied = append(applied, "include_hidden")
	}

	return q, applied
}

func (s *BondService) Search(f *dto.BondFilter, viewerID *uuid.UUID) ([]dto.BondResponse, int64, []string, error) {
	query, applied := s.applyFilters(s.db.Model(&models.Bond{}), f)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, nil, err
	}

	_, limit, offset := Paginate(f.Page, f.Limit)

	var bonds []models.Bond
	err := query.Preload("Interests").Preload("Creator").
		Order("bonds.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&bonds).Error
	if err != nil {
		return nil, 0, nil, err
	}

	items := make([]dto.BondResponse, 0, len(bonds))
	for i := range bonds {
		items = append(items, s.enrich(&bonds[i], viewerID, false))
	}
	return items, total, applied, nil
}

func (s *BondService) GetByID(ctx context.Context, id uint, viewerID *uuid.UUID) (*dto.BondResponse, error) {
	key := cache.Key("bond", strconv.FormatUint(uint64(id), 10))
	if viewerID == nil {
		if raw, ok := s.cache.Get(ctx, key); ok {
			var cached dto.BondResponse
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	var bond models.Bond
	err := s.db.Preload("Interests").Preload("Creator").First(&bond, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBondNotFound
		}
		return nil, err
	}

	resp := s.enrich(&bond, viewerID, true)

	if viewerID == nil {
		if raw, err := json.Marshal(resp); err == nil {
			s.cache.Set(ctx, key, string(raw), detailCacheTTL)
		}
	}
	return &resp, nil
}

func (s *BondService) Hide(ctx context.Context, id uint) (string, error) {
	var bond models.Bond
	if err := s.db.First(&bond, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrBondNotFound
		}
		return "", err
	}

	if bond.HiddenAt != nil {
		return "bond already hidden", nil
	}

	now := time.Now()
	if err := s.db.Model(&bond).Update("hidden_at", now).Error; err != nil {
		return "", err
	}

	s.invalidate(ctx, id)
	return "bond hidden", nil
}

func (s *BondService) Unhide(ctx context.Context, id uint) (string, error) {
	var bond models.Bond
	if err := s.db.First(&bond, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrBondNotFound
		}
		return "", err
	}

	if bond.HiddenAt == nil {
		return "bond is not hidden", nil
	}

	if err := s.db.Model(&bond).Update("hidden_at", nil).Error; err != nil {
		return "", err
	}

	s.invalidate(ctx, id)
	return "bond unhidden", nil
}

func (s *BondService) Delete(ctx context.Context, id uint) error {
	result := s.db.Delete(&models.Bond{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBondNotFound
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *BondService) invalidate(ctx context.Context, id uint) {
	s.cache.Delete(ctx,
		cache.Key("bond", strconv.FormatUint(uint64(id), 10)),
		cache.Key("stats:bonds"),
		topCreatorsKey("bond", defaultTopCreators),
	)
}

func (s *BondService) enrich(b *models.Bond, viewerID *uuid.UUID, withLikers bool) dto.BondResponse {
	resp := dto.BondResponse{
		ID:                 b.ID,
		Name:               b.Name,
		City:               b.City,
		Description:        b.Description,
		MaxMembers:         b.MaxMembers,
		IsUnlimitedMembers: b.IsUnlimitedMembers,
		IsPrivate:          b.IsPrivate,
		RequiresApproval:   b.RequiresApproval,
		Banner:             b.Banner,
		Rules:              b.Rules,
		IsTrending:         b.IsTrending,
		ViewCount:          b.ViewCount,
		MemberCount:        b.MemberCount,
		LikesCount:         b.LikesCount,
		HiddenAt:           b.HiddenAt,
		CreatedAt:          b.CreatedAt,
		Members:            []dto.UserSummary{},
		Interests:          make([]dto.InterestSummary, 0, len(b.Interests)),
	}

	for _, it := range b.Interests {
		resp.Interests = append(resp.Interests, dto.InterestSummary{ID: it.ID, Name: it.Name})
	}
	if b.Creator.ID != uuid.Nil {
		resp.Creator = &dto.UserSummary{
			ID:       b.Creator.ID,
			Name:     b.Creator.Name,
			Username: b.Creator.Username,
			Avatar:   b.Creator.Avatar,
		}
	}

	var members []dto.UserSummary
	if err := s.db.Table("bond_members bm").
		Select("u.id, u.name, u.username, u.avatar").
		Joins("JOIN users u ON u.id = bm.user_id").
		Where("bm.bond_id = ?", b.ID).
		Order("bm.created_at DESC").
		Limit(recentMembers).
		Scan(&members).Error; err != nil {
		slog.Error("failed to load recent members", "bond_id", b.ID, "error", err)
	}
	if len(members) > 0 {
		resp.Members = members
	}

	if err := s.db.Model(&models.BondMember{}).
		Where("bond_id = ?", b.ID).
		Distinct("user_id").
		Count(&resp.TotalMembersCount).Error; err != nil {
		slog.Error("failed to count members", "bond_id", b.ID, "error", err)
	}

	var organizers []dto.UserSummary
	if err := s.db.Table("bond_organizers bo").
		Select("u.id, u.name, u.username, u.avatar").
		Joins("JOIN users u ON u.id = bo.user_id").
		Where("bo.bond_id = ?", b.ID).
		Scan(&organizers).Error; err != nil {
		slog.Error("failed to load co-organizers", "bond_id", b.ID, "error", err)
	}
	resp.CoOrganizers = organizers

	if withLikers {
		var likers []dto.UserSummary
		if err := s.db.Table("bond_likes bl").
			Select("u.id, u.name, u.username, u.avatar").
			Joins("JOIN users u ON u.id = bl.user_id").
			Where("bl.bond_id = ?", b.ID).
			Order("bl.created_at DESC").
			Limit(10).
			Scan(&likers).Error; err != nil {
			slog.Error("failed to load likers", "bond_id", b.ID, "error", err)
		}
		resp.Likers = likers
	}

	if viewerID != nil {
		var n int64
		s.db.Model(&models.BondLike{}).
			Where("bond_id = ? AND user_id = ?", b.ID, *viewerID).
			Count(&n)
		resp.IsLiked = n > 0

		n = 0
		s.db.Model(&models.BondMember{}).
			Where("bond_id = ? AND user_id = ?", b.ID, *viewerID).
			Count(&n)
		resp.IsMember = n > 0

		if b.CreatorID == *viewerID {
			resp.IsOrganiser = true
		} else {
			n = 0
			s.db.Model(&models.BondOrganizer{}).
				Where("bond_id = ? AND user_id = ?", b.ID, *viewerID).
				Count(&n)
			resp.IsOrganiser = n > 0
		}
	}

	return resp
}
