package handler

import (
	"errors"

	"go-pantry-mind/internal/middleware"
	"go-pantry-mind/internal/service"

	"github.com/gofiber/fiber/v2"
)

type KitchenHandler struct {
	service service.KitchenService
}

func NewKitchenHandler(s service.KitchenService) *KitchenHandler {
	return &KitchenHandler{service: s}
}

// GetKitchen returns the caller's kitchen, including the invitation code
// members share to bring in new users.
// GET /api/v1/kitchen
func (h *KitchenHandler) GetKitchen(c *fiber.Ctx) error {
	kitchen, err := h.service.GetKitchen(middleware.Caller(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(kitchen)
}

// GetMembers lists the kitchen's users.
// GET /api/v1/kitchen/members
func (h *KitchenHandler) GetMembers(c *fiber.Ctx) error {
	members, err := h.service.GetMembers(middleware.Caller(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(members)
}

// UpdateAlerts patches the kitchen-wide alert window.
// PUT /api/v1/kitchen/alerts
func (h *KitchenHandler) UpdateAlerts(c *fiber.Ctx) error {
	var req service.UpdateKitchenAlertsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	kitchen, err := h.service.UpdateAlertSettings(middleware.Caller(c), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAlertTime) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Kitchen alert settings updated", "data": kitchen})
}
