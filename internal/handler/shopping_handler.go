package handler

import (
	"go-pantry-mind/internal/middleware"
	"go-pantry-mind/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ShoppingHandler struct {
	service service.ShoppingListService
}

func NewShoppingHandler(s service.ShoppingListService) *ShoppingHandler {
	return &ShoppingHandler{service: s}
}

// GetList returns the kitchen's shopping list.
// GET /api/v1/shopping-list
func (h *ShoppingHandler) GetList(c *fiber.Ctx) error {
	items, err := h.service.GetList(middleware.Caller(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(items)
}

// GetSummary returns the list bucketed by priority.
// GET /api/v1/shopping-list/summary
func (h *ShoppingHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.service.GetSummary(middleware.Caller(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(summary)
}

// AddItem appends a manual entry.
// POST /api/v1/shopping-list
func (h *ShoppingHandler) AddItem(c *fiber.Ctx) error {
	var req service.CreateShoppingItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.AddItem(middleware.Caller(c), &req)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Item added", "data": item})
}

// UpdateItem patches a list entry.
// PUT /api/v1/shopping-list/:id
func (h *ShoppingHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var req service.UpdateShoppingItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.UpdateItem(middleware.Caller(c), id, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item updated", "data": item})
}

// TogglePurchased flips the purchased flag.
// PATCH /api/v1/shopping-list/:id/toggle
func (h *ShoppingHandler) TogglePurchased(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	item, err := h.service.TogglePurchased(middleware.Caller(c), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item toggled", "data": item})
}

// DeleteItem removes a list entry.
// DELETE /api/v1/shopping-list/:id
func (h *ShoppingHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	if err := h.service.DeleteItem(middleware.Caller(c), id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item deleted"})
}

// GenerateFromLowStock adds pending entries for low-stock groups.
// POST /api/v1/shopping-list/generate
func (h *ShoppingHandler) GenerateFromLowStock(c *fiber.Ctx) error {
	generated, err := h.service.GenerateFromLowStock(middleware.Caller(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Shopping list generated", "data": generated})
}
