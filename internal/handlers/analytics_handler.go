package handlers

import (
	"github.com/bondsio/admin-backend/internal/dto"
	"github.com/bondsio/admin-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	service *services.AnalyticsService
}

func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) ActivityStats(c *fiber.Ctx) error {
	stats, err := h.service.ActivityStats(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute activity stats",
		})
	}
	return c.JSON(dto.OK("activity stats retrieved", stats))
}

func (h *AnalyticsHandler) BondStats(c *fiber.Ctx) error {
	stats, err := h.service.BondStats(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute bond stats",
		})
	}
	return c.JSON(dto.OK("bond stats retrieved", stats))
}

func (h *AnalyticsHandler) ReportStats(c *fiber.Ctx) error {
	stats, err := h.service.ReportStats(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute report stats",
		})
	}
	return c.JSON(dto.OK("report stats retrieved", stats))
}

func (h *AnalyticsHandler) TopActivityCreators(c *fiber.Ctx) error {
	return h.topCreators(c, "activity")
}

func (h *AnalyticsHandler) TopBondCreators(c *fiber.Ctx) error {
	return h.topCreators(c, "bond")
}

func (h *AnalyticsHandler) topCreators(c *fiber.Ctx, kind string) error {
	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}

	creators, err := h.service.TopCreators(c.UserContext(), kind, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute top creators",
		})
	}
	return c.JSON(dto.OK("top creators retrieved", creators))
}
