package handler

import (
	"errors"

	"go-pantry-mind/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helper untuk parse UUID dari string
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// serviceError maps service sentinels onto HTTP responses.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidQuantity), errors.Is(err, service.ErrConversion):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}
