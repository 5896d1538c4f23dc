package handler

import (
	"strconv"

	"go-pantry-mind/internal/middleware"
	"go-pantry-mind/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SuggestionHandler struct {
	service service.SuggestionService
}

func NewSuggestionHandler(s service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{service: s}
}

// ShoppingSuggestions proposes shopping entries, AI-backed with a
// rule-based fallback.
// GET /api/v1/suggestions/shopping
func (h *SuggestionHandler) ShoppingSuggestions(c *fiber.Ctx) error {
	suggestions, err := h.service.ShoppingSuggestions(c.Context(), middleware.Caller(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(suggestions)
}

// RecipeRecommendations proposes recipes for the current stock.
// GET /api/v1/suggestions/recipes?servings=2
func (h *SuggestionHandler) RecipeRecommendations(c *fiber.Ctx) error {
	servings, err := strconv.Atoi(c.Query("servings", "2"))
	if err != nil || servings <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid servings parameter"})
	}

	recipes, err := h.service.RecipeRecommendations(c.Context(), middleware.Caller(c), servings)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"recipes": recipes})
}
