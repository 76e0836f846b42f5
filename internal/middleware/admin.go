package middleware

import (
	"crypto/subtle"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/teckbook/teckbook-backend/internal/authctx"
	"github.com/teckbook/teckbook-backend/internal/config"
	"github.com/teckbook/teckbook-backend/internal/dto"
	"github.com/teckbook/teckbook-backend/internal/models"
	"gorm.io/gorm"
)

// AdminRequired admits callers whose JWT subject is an active administrator
// in the database. When cfg.AdminToken is set the X-Admin-Token header must
// match it as well. Must run after JWTProtected.
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" {
			if subtle.ConstantTimeCompare([]byte(c.Get("X-Admin-Token")), []byte(cfg.AdminToken)) != 1 {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Error: true, Message: "Admin access required", Code: "ADMIN_TOKEN_REQUIRED",
				})
			}
		}

		// The role claim can be stale; the database row is authoritative, but a
		// non-admin claim is enough to refuse without a query.
		if !authctx.GetRole(c).CanModerate() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required", Code: "ADMIN_ONLY",
			})
		}

		accountID, err := authctx.GetAccountID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var account models.Account
		if err := db.First(&account, accountID).Error; err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required", Code: "ADMIN_ONLY",
			})
		}
		if !account.Role.CanModerate() || !account.IsActive {
			slog.Warn("admin route denied", "account_id", account.ID, "path", c.Path())
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required", Code: "ADMIN_ONLY",
			})
		}

		c.Locals(authctx.LocalAccount, &account)
		return c.Next()
	}
}
