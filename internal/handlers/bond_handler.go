package handlers

import (
	"errors"

	"github.com/bondsio/admin-backend/internal/dto"
	"github.com/bondsio/admin-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type BondHandler struct {
	service *services.BondService
}

func NewBondHandler(service *services.BondService) *BondHandler {
	return &BondHandler{service: service}
}

func (h *BondHandler) Search(c *fiber.Ctx) error {
	f := dto.BondFilter{
		Name:          c.Query("name"),
		City:          c.Query("city"),
		Creator:       c.Query("creator"),
		CreatorID:     c.Query("creator_id"),
		InterestIDs:   c.Query("interest_ids"),
		IsTrending:    queryBoolPtr(c, "is_trending"),
		IsPrivate:     queryBoolPtr(c, "is_private"),
		MinMembers:    queryIntPtr(c, "min_members"),
		MaxMembers:    queryIntPtr(c, "max_members"),
		MinLikes:      queryIntPtr(c, "min_likes"),
		MaxLikes:      queryIntPtr(c, "max_likes"),
		IncludeHidden: c.QueryBool("include_hidden", false),
		Q:             c.Query("q"),
		Page:          c.QueryInt("page", 1),
		Limit:         c.QueryInt("limit", services.DefaultLimit),
	}

	items, total, applied, err := h.service.Search(&f, queryViewerID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to search bonds",
		})
	}

	page, limit, _ := services.Paginate(f.Page, f.Limit)
	return c.JSON(dto.OK("bonds retrieved", dto.ListResult{
		Items:          items,
		Total:          total,
		Page:           page,
		Limit:          limit,
		TotalPages:     services.TotalPages(total, limit),
		AppliedFilters: applied,
	}))
}

func (h *BondHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid bond ID",
		})
	}

	bond, err := h.service.GetByID(c.UserContext(), id, queryViewerID(c))
	if err != nil {
		if errors.Is(err, services.ErrBondNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch bond",
		})
	}

	return c.JSON(dto.OK("bond retrieved", bond))
}

func (h *BondHandler) Hide(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid bond ID",
		})
	}

	msg, err := h.service.Hide(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrBondNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to hide bond",
		})
	}

	return c.JSON(dto.OK(msg, nil))
}

func (h *BondHandler) Unhide(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid bond ID",
		})
	}

	msg, err := h.service.Unhide(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrBondNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to unhide bond",
		})
	}

	return c.JSON(dto.OK(msg, nil))
}

func (h *BondHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid bond ID",
		})
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, services.ErrBondNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete bond",
		})
	}

	return c.JSON(dto.OK("bond deleted", nil))
}
