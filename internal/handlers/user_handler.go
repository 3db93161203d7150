package handlers

import (
	"errors"

	"github.com/bondsio/admin-backend/internal/dto"
	"github.com/bondsio/admin-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	users   *services.UserService
	follows *services.FollowService
}

func NewUserHandler(users *services.UserService, follows *services.FollowService) *UserHandler {
	return &UserHandler{users: users, follows: follows}
}

func (h *UserHandler) Search(c *fiber.Ctx) error {
	f := dto.UserFilter{
		Name:        c.Query("name"),
		Username:    c.Query("username"),
		Email:       c.Query("email"),
		CountryCode: c.Query("country_code"),
		IsVerified:  queryBoolPtr(c, "is_verified"),
		Q:           c.Query("q"),
		Page:        c.QueryInt("page", 1),
		Limit:       c.QueryInt("limit", services.DefaultLimit),
	}

	items, total, applied, err := h.users.Search(&f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to search users",
		})
	}

	page, limit, _ := services.Paginate(f.Page, f.Limit)
	return c.JSON(dto.OK("users retrieved", dto.ListResult{
		Items:          items,
		Total:          total,
		Page:           page,
		Limit:          limit,
		TotalPages:     services.TotalPages(total, limit),
		AppliedFilters: applied,
	}))
}

func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user ID",
		})
	}

	user, err := h.users.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch user",
		})
	}

	return c.JSON(dto.OK("user retrieved", user))
}

func (h *UserHandler) followList(c *fiber.Ctx, fetch func(uuid.UUID, int, int) ([]dto.UserSummary, int64, error), message string) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user ID",
		})
	}

	page, limit, _ := services.Paginate(c.QueryInt("page", 1), c.QueryInt("limit", services.DefaultLimit))

	items, total, err := fetch(id, page, limit)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list follows",
		})
	}

	return c.JSON(dto.OK(message, dto.ListResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: services.TotalPages(total, limit),
	}))
}

func (h *UserHandler) Followers(c *fiber.Ctx) error {
	return h.followList(c, h.follows.Followers, "followers retrieved")
}

func (h *UserHandler) Following(c *fiber.Ctx) error {
	return h.followList(c, h.follows.Following, "following retrieved")
}

func (h *UserHandler) FollowCounts(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user ID",
		})
	}

	counts, err := h.follows.Counts(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch follow counts",
		})
	}

	return c.JSON(dto.OK("follow counts retrieved", counts))
}
