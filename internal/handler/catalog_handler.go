package handler

import (
	"go-pantry-mind/internal/middleware"
	"go-pantry-mind/internal/model"
	"go-pantry-mind/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves the reference data the clients need for intake
// forms: units, categories and the kitchen's storage locations.
type CatalogHandler struct {
	unitRepo     repository.UnitRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
}

func NewCatalogHandler(
	unitRepo repository.UnitRepository,
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
) *CatalogHandler {
	return &CatalogHandler{
		unitRepo:     unitRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
	}
}

// GET /api/v1/units
func (h *CatalogHandler) GetUnits(c *fiber.Ctx) error {
	units, err := h.unitRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(units)
}

// GET /api/v1/categories
func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.categoryRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(categories)
}

// GET /api/v1/locations
func (h *CatalogHandler) GetLocations(c *fiber.Ctx) error {
	locations, err := h.locationRepo.FindByKitchen(middleware.Caller(c).KitchenID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(locations)
}

// POST /api/v1/locations
func (h *CatalogHandler) CreateLocation(c *fiber.Ctx) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if body.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Name is required"})
	}

	location := &model.Location{
		KitchenID: middleware.Caller(c).KitchenID,
		Name:      body.Name,
	}
	if err := h.locationRepo.Create(location); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Location created", "data": location})
}

// DELETE /api/v1/locations/:id
func (h *CatalogHandler) DeleteLocation(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid location ID"})
	}

	location, err := h.locationRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Location not found"})
	}
	if location.KitchenID != middleware.Caller(c).KitchenID {
		return c.Status(404).JSON(fiber.Map{"error": "Location not found"})
	}

	if err := h.locationRepo.Delete(id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"message": "Location deleted"})
}
