package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "purposefood/internal/log"
	"purposefood/internal/services"
)

type DashboardHandler struct {
	Dash *services.DashboardService
}

// GET /api/v1/dashboard
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	view, err := h.Dash.Overview(time.Now())
	if err != nil {
		applog.Error(c, "dashboard.fail", err, nil)
		return c.Status(500).JSON(fiber.Map{"error": "could not load dashboard"})
	}
	return c.JSON(view)
}
