package routes

import (
	"time"

	"github.com/bondsio/admin-backend/internal/config"
	"github.com/bondsio/admin-backend/internal/handlers"
	"github.com/bondsio/admin-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	activityHandler *handlers.ActivityHandler,
	bondHandler *handlers.BondHandler,
	reportHandler *handlers.ReportHandler,
	userHandler *handlers.UserHandler,
	analyticsHandler *handlers.AnalyticsHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth is public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)

	// Everything below is the admin panel surface.
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))

	// Activities. Static paths must be registered before /:id.
	admin.Get("/activities", activityHandler.Search)
	admin.Get("/activities/stats", analyticsHandler.ActivityStats)
	admin.Get("/activities/top-creators", analyticsHandler.TopActivityCreators)
	admin.Get("/activities/:id", activityHandler.GetByID)
	admin.Post("/activities/:id/hide", activityHandler.Hide)
	admin.Post("/activities/:id/unhide", activityHandler.Unhide)
	admin.Delete("/activities/:id", activityHandler.Delete)

	// Bonds
	admin.Get("/bonds", bondHandler.Search)
	admin.Get("/bonds/stats", analyticsHandler.BondStats)
	admin.Get("/bonds/top-creators", analyticsHandler.TopBondCreators)
	admin.Get("/bonds/:id", bondHandler.GetByID)
	admin.Post("/bonds/:id/hide", bondHandler.Hide)
	admin.Post("/bonds/:id/unhide", bondHandler.Unhide)
	admin.Delete("/bonds/:id", bondHandler.Delete)

	// Reports
	admin.Get("/reports/stats", analyticsHandler.ReportStats)
	admin.Get("/reports/activities", reportHandler.ListActivityReports)
	admin.Get("/reports/activities/:id", reportHandler.GetActivityReport)
	admin.Put("/reports/activities/:id/review", reportHandler.ReviewActivityReport)
	admin.Get("/reports/bonds", reportHandler.ListBondReports)
	admin.Get("/reports/bonds/:id", reportHandler.GetBondReport)
	admin.Put("/reports/bonds/:id/review", reportHandler.ReviewBondReport)
	admin.Get("/reports/users", reportHandler.ListUserReports)
	admin.Get("/reports/users/:id", reportHandler.GetUserReport)
	admin.Put("/reports/users/:id/review", reportHandler.ReviewUserReport)

	// Users and follows
	admin.Get("/users", userHandler.Search)
	admin.Get("/users/:id", userHandler.GetByID)
	admin.Get("/users/:id/followers", userHandler.Followers)
	admin.Get("/users/:id/following", userHandler.Following)
	admin.Get("/users/:id/follow-counts", userHandler.FollowCounts)
}
