package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fleetman/internal/services"
)

type DashboardHandler struct {
	Dashboard *services.DashboardService
}

// GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.Dashboard.Stats()
	if err != nil {
		return storeError(c, "dashboard.stats", err)
	}
	return c.JSON(stats)
}

// GET / — server-rendered status page
func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	stats, err := h.Dashboard.Stats()
	if err != nil {
		return storeError(c, "dashboard.home", err)
	}
	return render(c, "dashboard", fiber.Map{"Stats": stats})
}
