package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/teckbook/teckbook-backend/internal/services"
)

type DashboardHandler struct {
	statsService *services.StatsService
}

func NewDashboardHandler(statsService *services.StatsService) *DashboardHandler {
	return &DashboardHandler{statsService: statsService}
}

func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	resp, err := h.statsService.Dashboard()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Stats query: period in days, default 30.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	resp, err := h.statsService.Stats(c.QueryInt("period", services.DefaultStatsPeriod))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}
