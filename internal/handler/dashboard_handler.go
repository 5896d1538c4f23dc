package handler

import (
	"strconv"

	"go-pantry-mind/internal/middleware"
	"go-pantry-mind/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStats returns the pantry overview counters.
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats(middleware.Caller(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(stats)
}

// GetConsumptionTrend returns daily consumption totals.
// GET /api/v1/dashboard/consumption-trend?days=30
func (h *DashboardHandler) GetConsumptionTrend(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "30"))
	if err != nil || days <= 0 || days > 365 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid days parameter"})
	}

	trend, err := h.service.GetConsumptionTrend(middleware.Caller(c), days)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(trend)
}
