package services

import (
	"github.com/bondsio/admin-backend/internal/dto"
	"github.com/bondsio/admin-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FollowCounts summarizes a user's follow graph.
type FollowCounts struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
	Mutual    int64 `json:"mutual"`
}

// FollowService exposes the follow graph to the admin dashboard.
type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// Followers lists the users following userID, most recent first.
func (s *FollowService) Followers(userID uuid.UUID, page, limit int) ([]dto.UserSummary, int64, error) {
	if err := s.ensureUser(userID); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := s.db.Model(&models.Follow{}).Where("followee_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	_, limit, offset := Paginate(page, limit)

	var users []dto.UserSummary
	err := s.db.Table("follows f").
		Select("u.id, u.name, u.username, u.avatar").
		Joins("JOIN users u ON u.id = f.follower_id").
		Where("f.followee_id = ?", userID).
		Order("f.created_at DESC").
		Offset(offset).
		Limit(limit).
		Scan(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Following lists the users userID follows, most recent first.
func (s *FollowService) Following(userID uuid.UUID, page, limit int) ([]dto.UserSummary, int64, error) {
	if err := s.ensureUser(userID); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := s.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	_, limit, offset := Paginate(page, limit)

	var users []dto.UserSummary
	err := s.db.Table("follows f").
		Select("u.id, u.name, u.username, u.avatar").
		Joins("JOIN users u ON u.id = f.followee_id").
		Where("f.follower_id = ?", userID).
		Order("f.created_at DESC").
		Offset(offset).
		Limit(limit).
		Scan(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Counts returns follower/following totals plus the mutual-follow count.
func (s *FollowService) Counts(userID uuid.UUID) (*FollowCounts, error) {
	if err := s.ensureUser(userID); err != nil {
		return nil, err
	}

	counts := &FollowCounts{}
	s.db.Model(&models.Follow{}).Where("followee_id = ?", userID).Count(&counts.Followers)
	s.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&counts.Following)

	err := s.db.Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Where("followee_id IN (SELECT follower_id FROM follows WHERE followee_id = ?)", userID).
		Count(&counts.Mutual).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (s *FollowService) ensureUser(userID uuid.UUID) error {
	var n int64
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
