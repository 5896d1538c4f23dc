package service

import (
	"context"
	"testing"

	"go-pantry-mind/internal/model"
	"go-pantry-mind/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSuggestionFixture(t *testing.T) (*fixture, SuggestionService) {
	t.Helper()
	f := newFixture(t)
	shopRepo := repository.NewShoppingListRepo(f.db)
	// No AI client: every call takes the rule-based path.
	svc := NewSuggestionService(nil, f.invRepo, shopRepo, f.eventRepo)
	return f, svc
}

func TestRuleBasedSuggestionsFlagLowStock(t *testing.T) {
	f, svc := newSuggestionFixture(t)

	f.addItem(t, "Sugar", "kg", "Grains", 10, nil) // 10000 g, well stocked
	f.addItem(t, "Salt", "g", "Spices", 3, nil)    // below the default threshold

	suggestions, err := svc.ShoppingSuggestions(context.Background(), f.caller)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Salt", suggestions[0].Name)
	assert.Equal(t, "RULE", suggestions[0].SuggestedBy)
	assert.Contains(t, suggestions[0].Reason, "Low stock: 3 remaining")
}

func TestRuleBasedSuggestionsMentionRecentConsumption(t *testing.T) {
	f, svc := newSuggestionFixture(t)

	// Two single-piece batches: draining one fully leaves the group low
	// on stock with one consumption event behind it.
	f.addItem(t, "Lemon", "piece", "Fruits", 1, nil)
	_, group := f.addItem(t, "Lemon", "piece", "Fruits", 1, nil)

	_, err := f.inv.ConsumeItems(f.caller, []ConsumeRequest{
		{ID: group.ID, Quantity: 1},
	}, model.ReasonConsumed)
	require.NoError(t, err)

	suggestions, err := svc.ShoppingSuggestions(context.Background(), f.caller)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Lemon", suggestions[0].Name)
	assert.Contains(t, suggestions[0].Reason, "consumed 1 times in the last 30 days")
}

func TestRecipeRecommendationsFallBackWithoutClient(t *testing.T) {
	_, svc := newSuggestionFixture(t)

	recipes, err := svc.RecipeRecommendations(context.Background(), CallerContext{}, 2)
	require.NoError(t, err)
	assert.Equal(t, fallbackRecipes, recipes)
}
