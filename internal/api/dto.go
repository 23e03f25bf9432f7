package api

import (
	"github.com/starford/ladle/internal/models"
	"github.com/starford/ladle/internal/recipeservice"
)

// RecipeDetail is the full recipe response type (aliased from the domain layer).
type RecipeDetail = models.Recipe

// RecipeSummary is a lightweight item in a list response (aliased from the service layer).
type RecipeSummary = recipeservice.RecipeSummary

// RecipeListResponse wraps paginated recipe listings.
type RecipeListResponse struct {
	Recipes []RecipeSummary `json:"recipes"`
	Total   int             `json:"total"`
}

// SearchResult is a single search hit in the API response.
type SearchResult struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Snippet  string `json:"snippet"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// StatsResponse reports totals for the indexed record set.
type StatsResponse struct {
	Total      int            `json:"total"`
	Categories map[string]int `json:"categories"`
}
