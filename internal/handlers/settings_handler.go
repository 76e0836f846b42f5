package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/teckbook/teckbook-backend/internal/dto"
	"github.com/teckbook/teckbook-backend/internal/services"
)

type SettingsHandler struct {
	settingsService *services.SettingsService
}

func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Public returns public settings as a typed key/value map.
func (h *SettingsHandler) Public(c *fiber.Ctx) error {
	settings, err := h.settingsService.Public()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(settings)
}

func (h *SettingsHandler) List(c *fiber.Ctx) error {
	settings, err := h.settingsService.List(c.Query("category"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"settings": settings})
}

func (h *SettingsHandler) Set(c *fiber.Ctx) error {
	key := c.Params("key")
	var req dto.SetSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	setting, err := h.settingsService.Set(key, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(setting)
}

func (h *SettingsHandler) Delete(c *fiber.Ctx) error {
	if err := h.settingsService.Delete(c.Params("key")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Setting deleted"})
}
