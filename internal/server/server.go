// Package server assembles the Fiber application from its services.
package server

import (
	"log/slog"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/teckbook/teckbook-backend/internal/config"
	"github.com/teckbook/teckbook-backend/internal/dto"
	"github.com/teckbook/teckbook-backend/internal/handlers"
	"github.com/teckbook/teckbook-backend/internal/middleware"
	"github.com/teckbook/teckbook-backend/internal/routes"
	"github.com/teckbook/teckbook-backend/internal/services"
	"gorm.io/gorm"
)

// Services are the long-lived services behind the HTTP API.
type Services struct {
	Audit      *services.AuditService
	Moderation *services.ModerationService
	Accounts   *services.AccountService
	Auth       *services.AuthService
	Content    *services.ContentService
	Stats      *services.StatsService
	Settings   *services.SettingsService
}

func NewServices(cfg *config.Config, db *gorm.DB) *Services {
	audit := services.NewAuditService(db)
	return &Services{
		Audit:      audit,
		Moderation: services.NewModerationService(db, audit),
		Accounts:   services.NewAccountService(db, audit),
		Auth:       services.NewAuthService(db, cfg),
		Content:    services.NewContentService(db, services.NewContentFilter()),
		Stats:      services.NewStatsService(db),
		Settings:   services.NewSettingsService(db),
	}
}

// New builds the Fiber app with global middleware and every route mounted.
func New(cfg *config.Config, db *gorm.DB, svc *Services) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	if cfg.SentryDSN != "" {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}

	app.Use(recover.New())
	app.Use(requestid.New())
	if cfg.AppEnv != "test" {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
		}))
	}
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	routes.Setup(app, cfg, db, routes.Handlers{
		Auth:       handlers.NewAuthHandler(svc.Auth),
		Health:     handlers.NewHealthHandler(db),
		Moderation: handlers.NewModerationHandler(svc.Moderation),
		Accounts:   handlers.NewAccountHandler(svc.Accounts),
		Audit:      handlers.NewAuditHandler(svc.Audit),
		Content:    handlers.NewContentHandler(svc.Content),
		Dashboard:  handlers.NewDashboardHandler(svc.Stats),
		Settings:   handlers.NewSettingsHandler(svc.Settings),
	})
	return app
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

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}
