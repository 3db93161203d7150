package middleware

import (
	"github.com/bondsio/admin-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS allows the admin dashboard origins. X-Admin-Token rides along with
// the usual auth headers; credentials stay off since auth is header-based.
func CORS(cfg *config.Config) fiber.Handler {
	origins := cfg.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept, X-Admin-Token",
		AllowMethods:     "GET, POST, PUT, DELETE, PATCH, OPTIONS",
		AllowCredentials: false,
	})
}
