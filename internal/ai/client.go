// Package ai is a thin HTTP client for the external suggestion service.
// Callers treat it as optional: every method can fail and the service
// layer falls back to local rule-based suggestions.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Suggestion is one proposed shopping entry as returned by the service.
type Suggestion struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Reason   string  `json:"reason"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Available checks the service health endpoint.
func (c *Client) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return false
	}
	return resp.StatusCode == http.StatusOK && strings.Contains(string(body), "healthy")
}

type suggestionsRequest struct {
	KitchenID     uuid.UUID `json:"kitchenId"`
	ListType      string    `json:"listType"`
	ExistingItems []string  `json:"existingItems"`
}

type suggestionsResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// ShoppingSuggestions asks the service for shopping list proposals.
func (c *Client) ShoppingSuggestions(ctx context.Context, kitchenID uuid.UUID, existing []string) ([]Suggestion, error) {
	if existing == nil {
		existing = []string{}
	}
	payload := suggestionsRequest{
		KitchenID:     kitchenID,
		ListType:      "RANDOM",
		ExistingItems: existing,
	}

	var out suggestionsResponse
	if err := c.post(ctx, "/api/ai-shopping/suggestions", payload, &out); err != nil {
		return nil, err
	}
	return out.Suggestions, nil
}

type recipesRequest struct {
	KitchenID uuid.UUID `json:"kitchenId"`
	Servings  int       `json:"servings"`
}

type recipesResponse struct {
	Recipes []string `json:"recipes"`
}

// RecipeRecommendations asks the service for recipe names matching the
// kitchen's current stock.
func (c *Client) RecipeRecommendations(ctx context.Context, kitchenID uuid.UUID, servings int) ([]string, error) {
	var out recipesResponse
	if err := c.post(ctx, "/api/ai-recipes/recommendations", recipesRequest{KitchenID: kitchenID, Servings: servings}, &out); err != nil {
		return nil, err
	}
	return out.Recipes, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ai service returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
