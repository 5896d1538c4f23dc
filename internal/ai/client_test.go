package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	assert.True(t, client.Available(context.Background()))
}

func TestAvailableUnhealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	assert.False(t, client.Available(context.Background()))

	srv.Close()
	assert.False(t, client.Available(context.Background()), "connection failure is not available")
}

func TestShoppingSuggestions(t *testing.T) {
	kitchenID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai-shopping/suggestions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, kitchenID.String(), req["kitchenId"])
		assert.Equal(t, []interface{}{"milk"}, req["existingItems"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"suggestions": []map[string]interface{}{
				{"name": "Eggs", "quantity": 12, "reason": "Frequently consumed"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	suggestions, err := client.ShoppingSuggestions(context.Background(), kitchenID, []string{"milk"})
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Eggs", suggestions[0].Name)
	assert.Equal(t, float64(12), suggestions[0].Quantity)
}

func TestShoppingSuggestionsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ShoppingSuggestions(context.Background(), uuid.New(), nil)
	assert.Error(t, err)
}

func TestRecipeRecommendations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai-recipes/recommendations", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"recipes": []string{"Vegetable Stir Fry", "Tomato Soup"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	recipes, err := client.RecipeRecommendations(context.Background(), uuid.New(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Vegetable Stir Fry", "Tomato Soup"}, recipes)
}
