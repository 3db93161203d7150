package handlers

import (
	"time"

	"github.com/bondsio/admin-backend/internal/database"
	"github.com/bondsio/admin-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	cachePing func() error
}

// NewHealthHandler takes the cache ping as a closure so the handler does not
// depend on a concrete store.
func NewHealthHandler(cachePing func() error) *HealthHandler {
	return &HealthHandler{cachePing: cachePing}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        "ok",
		Cache:     "ok",
	}

	if err := database.Ping(); err != nil {
		resp.Status = "degraded"
		resp.DB = "unreachable"
	}
	if h.cachePing != nil {
		if err := h.cachePing(); err != nil {
			resp.Status = "degraded"
			resp.Cache = "unreachable"
		}
	}

	status := fiber.StatusOK
	if resp.Status != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(resp)
}
