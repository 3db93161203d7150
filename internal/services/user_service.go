package services

import (
	"errors"

	"github.com/bondsio/admin-backend/internal/dto"
	"github.com/bondsio/admin-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// UserService serves the read-only admin view over users.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) applyFilters(q *gorm.DB, f *dto.UserFilter) (*gorm.DB, []string) {
	applied := []string{}

	if f.Name != "" {
		q = q.Where("name LIKE ?", Like(f.Name))
		applied = append(applied, "name")
	}
	if f.Username != "" {
		q = q.Where("username LIKE ?", Like(f.Username))
		applied = append(applied, "username")
	}
	if f.Email != "" {
		q = q.Where("email LIKE ?", Like(f.Email))
		applied = append(applied, "email")
	}
	if f.CountryCode != "" {
		q = q.Where("country_code = ?", f.CountryCode)
		applied = append(applied, "country_code")
	}
	if f.IsVerified != nil {
		q = q.Where("is_verified = ?", *f.IsVerified)
		applied = append(applied, "is_verified")
	}
	if f.Q != "" {
		like := Like(f.Q)
		q = q.Where("(name LIKE ? OR username LIKE ? OR email LIKE ?)", like, like, like)
		applied = append(applied, "q")
	}
	return q, applied
}

func (s *UserService) Search(f *dto.UserFilter) ([]dto.UserAdminResponse, int64, []string, error) {
	query, applied := s.applyFilters(s.db.Model(&models.User{}), f)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, nil, err
	}

	_, limit, offset := Paginate(f.Page, f.Limit)

	var users []models.User
	err := query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, nil, err
	}

	items := make([]dto.UserAdminResponse, 0, len(users))
	for i := range users {
		items = append(items, s.withCounts(&users[i]))
	}
	return items, total, applied, nil
}

func (s *UserService) GetByID(id uuid.UUID) (*dto.UserAdminResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := s.withCounts(&user)
	return &resp, nil
}

func (s *UserService) withCounts(u *models.User) dto.UserAdminResponse {
	resp := dto.UserAdminResponse{
		ID:          u.ID,
		Name:        u.Name,
		Username:    u.Username,
		Email:       u.Email,
		Avatar:      u.Avatar,
		Bio:         u.Bio,
		IsVerified:  u.IsVerified,
		CountryCode: u.CountryCode,
		CreatedAt:   u.CreatedAt,
	}

	s.db.Model(&models.Activity{}).Where("creator_id = ?", u.ID).Count(&resp.ActivitiesCount)
	s.db.Model(&models.Bond{}).Where("creator_id = ?", u.ID).Count(&resp.BondsCount)
	s.db.Model(&models.UserReport{}).Where("reported_user_id = ?", u.ID).Count(&resp.ReportsAgainst)
	s.db.Model(&models.Follow{}).Where("followee_id = ?", u.ID).Count(&resp.FollowersCount)

	return resp
}
