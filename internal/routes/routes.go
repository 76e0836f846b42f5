package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/teckbook/teckbook-backend/internal/config"
	"github.com/teckbook/teckbook-backend/internal/handlers"
	"github.com/teckbook/teckbook-backend/internal/middleware"
	"gorm.io/gorm"
)

// Handlers groups every HTTP handler mounted by Setup.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Health     *handlers.HealthHandler
	Moderation *handlers.ModerationHandler
	Accounts   *handlers.AccountHandler
	Audit      *handlers.AuditHandler
	Content    *handlers.ContentHandler
	Dashboard  *handlers.DashboardHandler
	Settings   *handlers.SettingsHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, h Handlers) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)
	api.Get("/settings", h.Settings.Public)

	// Auth-specific rate limit: 10 req/min per IP
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	auth := api.Group("/auth", authLimiter)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), h.Auth.Logout)
	api.Post("/admin/auth/login", authLimiter, h.Auth.AdminLogin)

	// Content (JWT required). Middleware is attached per route so that public
	// /api routes stay unauthenticated.
	jwt := middleware.JWTProtected(cfg)
	api.Get("/posts", jwt, h.Content.Feed)
	api.Post("/posts", jwt, h.Content.CreatePost)
	api.Patch("/posts/:id", jwt, h.Content.UpdatePost)
	api.Delete("/posts/:id", jwt, h.Content.DeletePost)
	api.Post("/posts/:id/comments", jwt, h.Content.AddComment)
	api.Delete("/comments/:id", jwt, h.Content.RemoveComment)
	api.Post("/posts/:id/like", jwt, h.Content.Like)
	api.Delete("/posts/:id/like", jwt, h.Content.Unlike)
	api.Post("/posts/:id/read", jwt, h.Content.MarkRead)

	// Admin panel (JWT + active administrator)
	admin := api.Group("/admin", jwt, middleware.AdminRequired(db, cfg))
	admin.Get("/dashboard", h.Dashboard.Dashboard)
	admin.Get("/stats", h.Dashboard.Stats)

	moderation := admin.Group("/moderation")
	moderation.Get("/posts", h.Moderation.ListPosts)
	moderation.Get("/pending", h.Moderation.Pending)
	moderation.Get("/posts/:id", h.Moderation.GetPost)
	moderation.Get("/posts/:id/history", h.Moderation.PostHistory)
	moderation.Post("/posts/:id/censor", h.Moderation.CensorPost)
	moderation.Post("/posts/:id/uncensor", h.Moderation.UncensorPost)

	accounts := admin.Group("/accounts")
	accounts.Get("", h.Accounts.List)
	accounts.Post("", h.Accounts.CreateProfessor)
	accounts.Get("/:id", h.Accounts.Get)
	accounts.Get("/:id/history", h.Accounts.History)
	accounts.Post("/:id/suspend", h.Moderation.SuspendAccount)
	accounts.Post("/:id/reactivate", h.Moderation.ReactivateAccount)
	accounts.Post("/:id/strike", h.Moderation.ApplyStrike)
	accounts.Post("/:id/reset-strikes", h.Moderation.ResetStrikes)

	admin.Get("/audit", h.Audit.List)

	admin.Get("/settings", h.Settings.List)
	admin.Put("/settings/:key", h.Settings.Set)
	admin.Delete("/settings/:key", h.Settings.Delete)
}
