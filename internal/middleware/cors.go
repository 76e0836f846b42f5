package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/teckbook/teckbook-backend/internal/config"
)

// CORS admits the admin panel and the client apps listed in CORS_ORIGINS.
// Credentials are only allowed for an explicit origin list.
func CORS(cfg *config.Config) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept, X-Admin-Token, X-Request-ID",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "X-Request-ID",
		AllowCredentials: cfg.CORSOrigins != "" && cfg.CORSOrigins != "*",
		MaxAge:           600,
	})
}
