package services

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/bondsio/admin-backend/internal/cache"
	"github.com/bondsio/admin-backend/internal/dto"
	"github.com/bondsio/admin-backend/internal/mailer"
	"github.com/bondsio/admin-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound      = errors.New("report not found")
	ErrInvalidReportStatus = errors.New("invalid status: must be pending, reviewed, resolved, or dismissed")
)

// ReportService lists and reviews user reports across the three subject
// kinds. Review is a single atomic update; the bond-report notification is
// best-effort only.
type ReportService struct {
	db     *gorm.DB
	cache  cache.Store
	mailer mailer.Mailer
}

func NewReportService(db *gorm.DB, store cache.Store, m mailer.Mailer) *ReportService {
	return &ReportService{db: db, cache: store, mailer: m}
}

// commonFilters applies the predicates shared by all three report tables.
func (s *ReportService) commonFilters(q *gorm.DB, f *dto.ReportFilter) (*gorm.DB, []string) {
	applied := []string{}

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
		applied = append(applied, "status")
	}
	if f.Reason != "" {
		q = q.Where("reason = ?", f.Reason)
		applied = append(applied, "reason")
	}
	if f.ReporterID != "" {
		if id, err := uuid.Parse(f.ReporterID); err == nil {
			q = q.Where("reporter_id = ?", id)
			applied = append(applied, "reporter_id")
		}
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
		applied = append(applied, "from")
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
		applied = append(applied, "to")
	}
	return q, applied
}

func (s *ReportService) ListActivityReports(f *dto.ReportFilter) ([]dto.ReportResponse, int64, []string, error) {
	query, applied := s.commonFilters(s.db.Model(&models.ActivityReport{}), f)
	if f.SubjectID != "" {
		if id, err := strconv.Atoi(f.SubjectID); err == nil {
			query = query.Where("activity_id = ?", id)
			applied = append(applied, "subject_id")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, nil, err
	}

	_, limit, offset := Paginate(f.Page, f.Limit)

	var reports []models.ActivityReport
	err := query.Preload("Reporter").Preload("Activity").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, 0, nil, err
	}

	items := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		items = append(items, activityReportResponse(&reports[i]))
	}
	return items, total, applied, nil
}

func (s *ReportService) ListBondReports(f *dto.ReportFilter) ([]dto.ReportResponse, int64, []string, error) {
	query, applied := s.commonFilters(s.db.Model(&models.BondReport{}), f)
	if f.SubjectID != "" {
		if id, err := strconv.Atoi(f.SubjectID); err == nil {
			query = query.Where("bond_id = ?", id)
			applied = append(applied, "subject_id")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, nil, err
	}

	_, limit, offset := Paginate(f.Page, f.Limit)

	var reports []models.BondReport
	err := query.Preload("Reporter").Preload("Bond").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, 0, nil, err
	}

	items := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		items = append(items, bondReportResponse(&reports[i]))
	}
	return items, total, applied, nil
}

func (s *ReportService) ListUserReports(f *dto.ReportFilter) ([]dto.ReportResponse, int64, []string, error) {
	query, applied := s.commonFilters(s.db.Model(&models.UserReport{}), f)
	if f.SubjectID != "" {
		if id, err := uuid.Parse(f.SubjectID); err == nil {
			query = query.Where("reported_user_id = ?", id)
			applied = append(applied, "subject_id")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, nil, err
	}

	_, limit, offset := Paginate(f.Page, f.Limit)

	var reports []models.UserReport
	err := query.Preload("Reporter").Preload("ReportedUser").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, 0, nil, err
	}

	items := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		items = append(items, userReportResponse(&reports[i]))
	}
	return items, total, applied, nil
}

func (s *ReportService) GetActivityReport(id uint) (*dto.ReportResponse, error) {
	var report models.ActivityReport
	if err := s.db.Preload("Reporter").Preload("Activity").First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	resp := activityReportResponse(&report)
	return &resp, nil
}

func (s *ReportService) GetBondReport(id uint) (*dto.ReportResponse, error) {
	var report models.BondReport
	if err := s.db.Preload("Reporter").Preload("Bond").First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	resp := bondReportResponse(&report)
	return &resp, nil
}

func (s *ReportService) GetUserReport(id uint) (*dto.ReportResponse, error) {
	var report models.UserReport
	if err := s.db.Preload("Reporter").Preload("ReportedUser").First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	resp := userReportResponse(&report)
	return &resp, nil
}

// ReviewActivityReport sets status, reviewer, notes and reviewed_at in one
// update. There is no transition guard: any status may follow any other.
func (s *ReportService) ReviewActivityReport(ctx context.Context, id uint, reviewerID uuid.UUID, status, notes string) error {
	if err := s.review(ctx, &models.ActivityReport{}, id, reviewerID, status, notes); err != nil {
		return err
	}
	s.cache.Delete(ctx, cache.Key("stats:reports"))
	return nil
}

// ReviewBondReport reviews a bond report and then emails the reporter the
// outcome. The notification never fails the review: lookup or send errors
// are logged and dropped.
func (s *ReportService) ReviewBondReport(ctx context.Context, id uint, reviewerID uuid.UUID, status, notes string) error {
	if err := s.review(ctx, &models.BondReport{}, id, reviewerID, status, notes); err != nil {
		return err
	}
	s.cache.Delete(ctx, cache.Key("stats:reports"))
	s.notifyBondReporter(ctx, id, status)
	return nil
}

func (s *ReportService) ReviewUserReport(ctx context.Context, id uint, reviewerID uuid.UUID, status, notes string) error {
	if err := s.review(ctx, &models.UserReport{}, id, reviewerID, status, notes); err != nil {
		return err
	}
	s.cache.Delete(ctx, cache.Key("stats:reports"))
	return nil
}

func (s *ReportService) review(_ context.Context, model interface{}, id uint, reviewerID uuid.UUID, status, notes string) error {
	if !models.ValidReportStatus(status) {
		return ErrInvalidReportStatus
	}

	result := s.db.Model(model).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_by": reviewerID,
			"admin_notes": notes,
			"reviewed_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return nil
}

func (s *ReportService) notifyBondReporter(ctx context.Context, reportID uint, status string) {
	var report models.BondReport
	if err := s.db.First(&report, "id = ?", reportID).Error; err != nil {
		slog.Error("report notification: reload failed", "report_id", reportID, "error", err)
		return
	}

	var reporter models.User
	if err := s.db.First(&reporter, "id = ?", report.ReporterID).Error; err != nil {
		slog.Error("report notification: reporter lookup failed", "report_id", reportID, "error", err)
		return
	}

	var bond models.Bond
	if err := s.db.First(&bond, "id = ?", report.BondID).Error; err != nil {
		slog.Error("report notification: bond lookup failed", "report_id", reportID, "error", err)
		return
	}

	body, err := mailer.ReportReviewedBody(reporter.Name, bond.Name, status)
	if err != nil {
		slog.Error("report notification: template failed", "report_id", reportID, "error", err)
		return
	}

	if err := s.mailer.Send(ctx, reporter.Email, "Your report has been reviewed", body); err != nil {
		slog.Error("report notification: send failed", "report_id", reportID, "error", err)
	}
}

func activityReportResponse(r *models.ActivityReport) dto.ReportResponse {
	return dto.ReportResponse{
		ID:          r.ID,
		SubjectID:   strconv.FormatUint(uint64(r.ActivityID), 10),
		SubjectName: r.Activity.Title,
		Reporter:    reporterSummary(&r.Reporter),
		Reason:      r.Reason,
		Description: r.Description,
		Status:      r.Status,
		ReviewedBy:  r.ReviewedBy,
		AdminNotes:  r.AdminNotes,
		ReviewedAt:  r.ReviewedAt,
		CreatedAt:   r.CreatedAt,
	}
}

func bondReportResponse(r *models.BondReport) dto.ReportResponse {
	return dto.ReportResponse{
		ID:          r.ID,
		SubjectID:   strconv.FormatUint(uint64(r.BondID), 10),
		SubjectName: r.Bond.Name,
		Reporter:    reporterSummary(&r.Reporter),
		Reason:      r.Reason,
		Description: r.Description,
		Status:      r.Status,
		ReviewedBy:  r.ReviewedBy,
		AdminNotes:  r.AdminNotes,
		ReviewedAt:  r.ReviewedAt,
		CreatedAt:   r.CreatedAt,
	}
}

func userReportResponse(r *models.UserReport) dto.ReportResponse {
	return dto.ReportResponse{
		ID:          r.ID,
		SubjectID:   r.ReportedUserID.String(),
		SubjectName: r.ReportedUser.Name,
		Reporter:    reporterSummary(&r.Reporter),
		Reason:      r.Reason,
		Description: r.Description,
		Status:      r.Status,
		ReviewedBy:  r.ReviewedBy,
		AdminNotes:  r.AdminNotes,
		ReviewedAt:  r.ReviewedAt,
		CreatedAt:   r.CreatedAt,
	}
}

func reporterSummary(u *models.User) *dto.UserSummary {
	if u.ID == uuid.Nil {
		return nil
	}
	return &dto.UserSummary{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Avatar:   u.Avatar,
	}
}
