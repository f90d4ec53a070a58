package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Health       *handlers.HealthHandler
	Reports      *handlers.ReportHandler
	AdminReports *handlers.AdminReportHandler
	Notify       *handlers.NotificationHandler
}

func Setup(app *fiber.App, cfg *config.Config, roles middleware.RoleLookup, h Handlers) {
	if cfg.MetricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Report submission: stricter limit, 10 req/min per IP
	reportLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	api.Post("/reports", reportLimiter, middleware.JWTProtected(cfg), h.Reports.CreateReport)
	api.Get("/reports/me", middleware.JWTProtected(cfg), h.Reports.ListMyReports)

	notifications := api.Group("/notifications", middleware.JWTProtected(cfg))
	notifications.Get("/", h.Notify.List)
	notifications.Get("/unread-count", h.Notify.UnreadCount)
	notifications.Put("/:id/read", h.Notify.MarkRead)

	// The admin token alone is enough, so the JWT check must not reject
	// token-only requests before AdminRequired sees them.
	admin := api.Group("/admin", optionalJWT(cfg), middleware.AdminRequired(roles, cfg))
	admin.Get("/reports", h.AdminReports.ListReports)
	admin.Get("/reports/statistics", h.AdminReports.Statistics)
	admin.Get("/reports/groups", h.AdminReports.ListGroups)
	admin.Get("/reports/groups/:targetType/:targetId", h.AdminReports.GetGroup)
	admin.Get("/reports/:id", h.AdminReports.GetReport)
	admin.Put("/reports/:id/review", h.AdminReports.ReviewReport)
	admin.Delete("/reports/:id", h.AdminReports.DeleteReport)
}

// optionalJWT verifies a bearer token only when one is sent.
func optionalJWT(cfg *config.Config) fiber.Handler {
	verify := middleware.JWTProtected(cfg)
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return c.Next()
		}
		return verify(c)
	}
}
