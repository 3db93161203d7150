package handlers

import (
	"errors"

	"github.com/bondsio/admin-backend/internal/dto"
	"github.com/bondsio/admin-backend/internal/middleware"
	"github.com/bondsio/admin-backend/internal/models"
	"github.com/bondsio/admin-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) reportFilter(c *fiber.Ctx) (*dto.ReportFilter, error) {
	f := dto.ReportFilter{
		Status:     c.Query("status"),
		Reason:     c.Query("reason"),
		ReporterID: c.Query("reporter_id"),
		SubjectID:  c.Query("subject_id"),
		From:       queryTimePtr(c, "from"),
		To:         queryTimePtr(c, "to"),
		Page:       c.QueryInt("page", 1),
		Limit:      c.QueryInt("limit", services.DefaultLimit),
	}
	if f.Status != "" && !models.ValidReportStatus(f.Status) {
		return nil, services.ErrInvalidReportStatus
	}
	return &f, nil
}

func (h *ReportHandler) list(c *fiber.Ctx, fetch func(*dto.ReportFilter) ([]dto.ReportResponse, int64, []string, error)) error {
	f, err := h.reportFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	items, total, applied, err := fetch(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list reports",
		})
	}

	page, limit, _ := services.Paginate(f.Page, f.Limit)
	return c.JSON(dto.OK("reports retrieved", dto.ListResult{
		Items:          items,
		Total:          total,
		Page:           page,
		Limit:          limit,
		TotalPages:     services.TotalPages(total, limit),
		AppliedFilters: applied,
	}))
}

func (h *ReportHandler) ListActivityReports(c *fiber.Ctx) error {
	return h.list(c, h.service.ListActivityReports)
}

func (h *ReportHandler) ListBondReports(c *fiber.Ctx) error {
	return h.list(c, h.service.ListBondReports)
}

func (h *ReportHandler) ListUserReports(c *fiber.Ctx) error {
	return h.list(c, h.service.ListUserReports)
}

func (h *ReportHandler) get(c *fiber.Ctx, fetch func(uint) (*dto.ReportResponse, error)) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	report, err := fetch(id)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch report",
		})
	}

	return c.JSON(dto.OK("report retrieved", report))
}

func (h *ReportHandler) GetActivityReport(c *fiber.Ctx) error {
	return h.get(c, h.service.GetActivityReport)
}

func (h *ReportHandler) GetBondReport(c *fiber.Ctx) error {
	return h.get(c, h.service.GetBondReport)
}

func (h *ReportHandler) GetUserReport(c *fiber.Ctx) error {
	return h.get(c, h.service.GetUserReport)
}

type reviewFn func(c *fiber.Ctx, id uint, reviewerID uuid.UUID, req *dto.ReviewReportRequest) error

func (h *ReportHandler) review(c *fiber.Ctx, do reviewFn) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	var req dto.ReviewReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	// Requests authorized via the static admin token carry no JWT; the
	// review is then attributed to the nil UUID.
	reviewerID, err := middleware.CurrentUserID(c)
	if err != nil {
		reviewerID = uuid.Nil
	}

	if err := do(c, id, reviewerID, &req); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidReportStatus):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrReportNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to review report",
			})
		}
	}

	return c.JSON(dto.OK("report reviewed", nil))
}

func (h *ReportHandler) ReviewActivityReport(c *fiber.Ctx) error {
	return h.review(c, func(c *fiber.Ctx, id uint, reviewerID uuid.UUID, req *dto.ReviewReportRequest) error {
		return h.service.ReviewActivityReport(c.UserContext(), id, reviewerID, req.Status, req.Notes)
	})
}

func (h *ReportHandler) ReviewBondReport(c *fiber.Ctx) error {
	return h.review(c, func(c *fiber.Ctx, id uint, reviewerID uuid.UUID, req *dto.ReviewReportRequest) error {
		return h.service.ReviewBondReport(c.UserContext(), id, reviewerID, req.Status, req.Notes)
	})
}

func (h *ReportHandler) ReviewUserReport(c *fiber.Ctx) error {
	return h.review(c, func(c *fiber.Ctx, id uint, reviewerID uuid.UUID, req *dto.ReviewReportRequest) error {
		return h.service.ReviewUserReport(c.UserContext(), id, reviewerID, req.Status, req.Notes)
	})
}
