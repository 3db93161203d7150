package middleware

import (
	"github.com/bondsio/admin-backend/internal/config"
	"github.com/bondsio/admin-backend/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JWTProtected guards a route with the admin session JWT. Requests carrying
// a matching X-Admin-Token header skip the JWT check entirely; AdminRequired
// re-verifies the token, so the skip never widens access on its own.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		Filter: func(c *fiber.Ctx) bool {
			return cfg.AdminToken != "" && c.Get("X-Admin-Token") == cfg.AdminToken
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			msg := "Unauthorized: invalid or expired token"
			if c.Get("Authorization") == "" {
				msg = "Unauthorized: missing credentials"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: msg,
			})
		},
	})
}
