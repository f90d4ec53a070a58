package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/goccy/go-json"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/scheduler"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/worker"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	stdout := logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(stdout, pgLogHandler)))

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	// Repositories
	reportRepo := repository.NewReportRepository(database.DB)
	userRepo := repository.NewUserRepository(database.DB)
	recipeRepo := repository.NewRecipeRepository(database.DB)
	notificationRepo := repository.NewNotificationRepository(database.DB)

	// Reporter notifications run on a bounded pool; a full queue runs the
	// task on the submitting goroutine.
	notifyPool := worker.NewPool("notify", cfg.NotifyWorkers, cfg.NotifyQueueSize)

	// Services
	resolver := services.NewReportTargetResolver(userRepo, recipeRepo)
	notificationService := services.NewNotificationService(notificationRepo, resolver)
	synchronizer := services.NewReportSynchronizer(reportRepo)
	orchestrator := services.NewReportNotificationOrchestrator(reportRepo, synchronizer, userRepo, notificationService, notifyPool)
	reportService := services.NewReportService(
		reportRepo,
		repository.NewTxManager(database.DB),
		services.NewReportValidator(reportRepo, userRepo, recipeRepo),
		services.NewReportStatusManager(),
		services.NewReportActionExecutor(userRepo, recipeRepo, cfg.SuspensionDays),
		services.NewReportAutoModerator(reportRepo, userRepo, recipeRepo),
		synchronizer,
		orchestrator,
	)
	groupService := services.NewReportGroupService(reportRepo, userRepo, recipeRepo, services.NewReportGroupScoreCalculator())

	// Scheduled jobs
	jobs := scheduler.New(userRepo, func(ctx context.Context) (int64, error) {
		return logging.PruneSystemLogs(ctx, database.DB, cfg.LogRetentionDays)
	}, cfg.CronSuspensionSpec, cfg.CronLogCleanupSpec)
	if err := jobs.Start(); err != nil {
		slog.Error("scheduler start failed", "error", err)
		os.Exit(1)
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	routes.Setup(app, cfg, userRepo, routes.Handlers{
		Health:       handlers.NewHealthHandler(database.Ping, notifyPool.QueueDepth),
		Reports:      handlers.NewReportHandler(reportService),
		AdminReports: handlers.NewAdminReportHandler(reportService, groupService),
		Notify:       handlers.NewNotificationHandler(notificationService),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	jobs.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := notifyPool.Shutdown(ctx); err != nil {
		slog.Error("notification pool did not drain", "error", err)
	}
	cancel()

	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
