package handler

import (
	"go-pantry-mind/internal/middleware"
	"go-pantry-mind/internal/model"
	"go-pantry-mind/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// AddItem records a purchase: quantity arrives in the user's unit and is
// aggregated into the matching group.
// POST /api/v1/inventory/items
func (h *InventoryHandler) AddItem(c *fiber.Ctx) error {
	var req service.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, group, err := h.service.AddItem(middleware.Caller(c), &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Item added",
		"data":    fiber.Map{"item": item, "inventory": group},
	})
}

// GetInventory lists every group in the caller's kitchen.
// GET /api/v1/inventory
func (h *InventoryHandler) GetInventory(c *fiber.Ctx) error {
	groups, err := h.service.GetKitchenInventory(middleware.Caller(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(groups)
}

// GetGroup returns one group with its batches.
// GET /api/v1/inventory/:id
func (h *InventoryHandler) GetGroup(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid inventory ID"})
	}

	group, err := h.service.GetGroup(middleware.Caller(c), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(group)
}

// GetItem returns a single batch.
// GET /api/v1/inventory/items/:id
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	item, err := h.service.GetItem(middleware.Caller(c), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(item)
}

// UpdateItem patches a batch.
// PUT /api/v1/inventory/items/:id
func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var req service.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.UpdateItem(middleware.Caller(c), id, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item updated", "data": item})
}

// DeleteItem removes a batch and accounts for its remaining quantity.
// The optional reason query selects the consumption event reason.
// DELETE /api/v1/inventory/items/:id?reason=EXPIRED
func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	reason := model.EventReason(c.Query("reason"))
	switch reason {
	case "", model.ReasonConsumed, model.ReasonRecipeCooked, model.ReasonExpired:
	default:
		return c.Status(400).JSON(fiber.Map{"error": "Invalid reason"})
	}

	if err := h.service.DeleteItem(middleware.Caller(c), id, reason); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item deleted"})
}

// ConsumeRequest bodies carry batch or group ids; each entry reports its
// own shortfall.
// POST /api/v1/inventory/consume
func (h *InventoryHandler) ConsumeItems(c *fiber.Ctx) error {
	var body struct {
		Items  []service.ConsumeRequest `json:"items"`
		Reason model.EventReason        `json:"reason"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if len(body.Items) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "No items to consume"})
	}

	results, err := h.service.ConsumeItems(middleware.Caller(c), body.Items, body.Reason)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Consumption recorded", "data": results})
}

// UpdateAlerts adjusts a group's low-stock and expiry thresholds.
// PUT /api/v1/inventory/:id/alerts
func (h *InventoryHandler) UpdateAlerts(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid inventory ID"})
	}

	var req service.UpdateAlertsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	group, err := h.service.UpdateAlerts(middleware.Caller(c), id, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Alert settings updated", "data": group})
}
