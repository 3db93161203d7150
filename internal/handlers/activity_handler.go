package handlers

import (
	"errors"

	"github.com/bondsio/admin-backend/internal/dto"
	"github.com/bondsio/admin-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

var activityStatuses = []string{"upcoming", "ongoing", "completed", "expired"}

type ActivityHandler struct {
	service *services.ActivityService
}

func NewActivityHandler(service *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

func (h *ActivityHandler) Search(c *fiber.Ctx) error {
	f := dto.ActivityFilter{
		Title:           c.Query("title"),
		Location:        c.Query("location"),
		Visibility:      c.Query("visibility"),
		Status:          c.Query("status"),
		Creator:         c.Query("creator"),
		CreatorID:       c.Query("creator_id"),
		InterestIDs:     c.Query("interest_ids"),
		BondIDs:         c.Query("bond_ids"),
		MinParticipants: queryIntPtr(c, "min_participants"),
		MaxParticipants: queryIntPtr(c, "max_participants"),
		MinLikes:        queryIntPtr(c, "min_likes"),
		MaxLikes:        queryIntPtr(c, "max_likes"),
		StartAfter:      queryTimePtr(c, "start_after"),
		StartBefore:     queryTimePtr(c, "start_before"),
		IncludeHidden:   c.QueryBool("include_hidden", false),
		Q:               c.Query("q"),
		Page:            c.QueryInt("page", 1),
		Limit:           c.QueryInt("limit", services.DefaultLimit),
	}

	// Enumerated fields are hard-validated; everything else is fail-open.
	if f.Visibility != "" && !oneOf(f.Visibility, []string{"public", "private", "bond_only"}) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid visibility",
		})
	}
	if f.Status != "" && !oneOf(f.Status, activityStatuses) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid status",
		})
	}

	items, total, applied, err := h.service.Search(&f, queryViewerID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to search activities",
		})
	}

	page, limit, _ := services.Paginate(f.Page, f.Limit)
	return c.JSON(dto.OK("activities retrieved", dto.ListResult{
		Items:          items,
		Total:          total,
		Page:           page,
		Limit:          limit,
		TotalPages:     services.TotalPages(total, limit),
		AppliedFilters: applied,
	}))
}

func (h *ActivityHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid activity ID",
		})
	}

	activity, err := h.service.GetByID(c.UserContext(), id, queryViewerID(c))
	if err != nil {
		if errors.Is(err, services.ErrActivityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch activity",
		})
	}

	return c.JSON(dto.OK("activity retrieved", activity))
}

func (h *ActivityHandler) Hide(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid activity ID",
		})
	}

	msg, err := h.service.Hide(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrActivityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to hide activity",
		})
	}

	return c.JSON(dto.OK(msg, nil))
}

func (h *ActivityHandler) Unhide(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid activity ID",
		})
	}

	msg, err := h.service.Unhide(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrActivityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to unhide activity",
		})
	}

	return c.JSON(dto.OK(msg, nil))
}

func (h *ActivityHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid activity ID",
		})
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, services.ErrActivityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete activity",
		})
	}

	return c.JSON(dto.OK("activity deleted", nil))
}
