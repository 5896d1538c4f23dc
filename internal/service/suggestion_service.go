package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-pantry-mind/internal/ai"
	"go-pantry-mind/internal/model"
	"go-pantry-mind/internal/repository"
)

// ShoppingSuggestion is a proposed purchase with its provenance, so the
// client can show whether the AI or the local rules produced it.
type ShoppingSuggestion struct {
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	SuggestedBy string  `json:"suggested_by"` // AI or RULE
	Reason      string  `json:"reason"`
	Confidence  float64 `json:"confidence"`
}

// fallbackRecipes is served when the AI service is down.
var fallbackRecipes = []string{"Basic Rice", "Simple Soup", "Mixed Vegetables", "Dal Tadka"}

// recentConsumptionDays is how far back rule-based suggestions look for
// consumption history when phrasing their reason.
const recentConsumptionDays = 30

type SuggestionService interface {
	ShoppingSuggestions(ctx context.Context, caller CallerContext) ([]ShoppingSuggestion, error)
	RecipeRecommendations(ctx context.Context, caller CallerContext, servings int) ([]string, error)
}

type suggestionService struct {
	client    *ai.Client
	invRepo   repository.InventoryRepository
	shopRepo  repository.ShoppingListRepository
	eventRepo repository.ConsumptionEventRepository
}

func NewSuggestionService(
	client *ai.Client,
	invRepo repository.InventoryRepository,
	shopRepo repository.ShoppingListRepository,
	eventRepo repository.ConsumptionEventRepository,
) SuggestionService {
	return &suggestionService{client: client, invRepo: invRepo, shopRepo: shopRepo, eventRepo: eventRepo}
}

// ShoppingSuggestions delegates to the AI service and falls back to
// rule-based suggestions computed from low stock on any failure.
func (s *suggestionService) ShoppingSuggestions(ctx context.Context, caller CallerContext) ([]ShoppingSuggestion, error) {
	if s.client != nil {
		existing, err := s.shopRepo.FindPendingNames(caller.KitchenID)
		if err != nil {
			existing = nil
		}
		aiSuggestions, err := s.client.ShoppingSuggestions(ctx, caller.KitchenID, existing)
		if err == nil {
			out := make([]ShoppingSuggestion, 0, len(aiSuggestions))
			for _, sg := range aiSuggestions {
				out = append(out, ShoppingSuggestion{
					Name:        sg.Name,
					Quantity:    sg.Quantity,
					SuggestedBy: string(model.SourceAI),
					Reason:      sg.Reason,
					Confidence:  0.8,
				})
			}
			return out, nil
		}
		log.Printf("AI suggestion generation failed, using rules: %v", err)
	}
	return s.ruleBasedSuggestions(caller)
}

func (s *suggestionService) ruleBasedSuggestions(caller CallerContext) ([]ShoppingSuggestion, error) {
	lowStock, err := s.invRepo.FindLowStock(caller.KitchenID)
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -recentConsumptionDays)
	out := make([]ShoppingSuggestion, 0, len(lowStock))
	for i := range lowStock {
		inv := &lowStock[i]
		reason := fmt.Sprintf("Low stock: %d remaining", inv.TotalQuantity)
		if events, err := s.eventRepo.FindRecentByName(caller.KitchenID, inv.Name, since); err == nil && len(events) > 0 {
			reason = fmt.Sprintf("Low stock: %d remaining, consumed %d times in the last %d days",
				inv.TotalQuantity, len(events), recentConsumptionDays)
		}
		out = append(out, ShoppingSuggestion{
			Name:        inv.Name,
			Quantity:    suggestedRestockQuantity(inv),
			SuggestedBy: "RULE",
			Reason:      reason,
			Confidence:  0.8,
		})
	}
	return out, nil
}

// RecipeRecommendations delegates to the AI service; on failure it serves
// a fixed fallback list.
func (s *suggestionService) RecipeRecommendations(ctx context.Context, caller CallerContext, servings int) ([]string, error) {
	if s.client != nil {
		recipes, err := s.client.RecipeRecommendations(ctx, caller.KitchenID, servings)
		if err == nil && len(recipes) > 0 {
			return recipes, nil
		}
		if err != nil {
			log.Printf("AI recipe recommendation failed, using fallback: %v", err)
		}
	}
	return fallbackRecipes, nil
}
