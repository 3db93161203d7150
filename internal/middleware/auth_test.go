package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/bondsio/admin-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Get("/ping", JWTProtected(cfg), AdminRequired(nil, cfg), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestAdminTokenPassesWithoutJWT(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret", AdminToken: "ops-token"}
	app := adminApp(cfg)

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Admin-Token", "ops-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMissingCredentialsRejected(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret", AdminToken: "ops-token"}
	app := adminApp(cfg)

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestWrongAdminTokenRejected(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret", AdminToken: "ops-token"}
	app := adminApp(cfg)

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Admin-Token", "guess")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminTokenIgnoredWhenUnconfigured(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret"}
	app := adminApp(cfg)

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Admin-Token", "anything")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
