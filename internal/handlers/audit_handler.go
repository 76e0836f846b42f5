package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/teckbook/teckbook-backend/internal/models"
	"github.com/teckbook/teckbook-backend/internal/services"
)

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	entries, total, err := h.auditService.List(services.AuditFilter{
		AdminID: uint(c.QueryInt("admin_id", 0)),
		Action:  models.AuditAction(c.Query("action")),
	}, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(pageResponse(page, total, entries))
}
