// Package recipeservice coordinates read access to the recipe index for the
// HTTP API and the MCP server.
package recipeservice

import (
	"context"
	"time"

	"github.com/starford/ladle/internal/index"
	"github.com/starford/ladle/internal/models"
)

// RecipeSummary is a lightweight item in a list response.
type RecipeSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Difficulty int       `json:"difficulty"`
	Servings   int       `json:"servings"`
	Tags       []string  `json:"tags"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// StatsView summarizes the indexed record set.
type StatsView struct {
	Total      int            `json:"total"`
	Categories map[string]int `json:"categories"`
}

// Service exposes read operations over the recipe index.
type Service struct {
	db index.RecipeIndex
}

// NewService creates a new recipe service.
func NewService(db index.RecipeIndex) *Service {
	return &Service{db: db}
}

// GetRecipe returns the full record for id.
func (s *Service) GetRecipe(_ context.Context, id string) (*models.Recipe, error) {
	return s.db.GetRecipe(id)
}

// ListRecipes returns paginated recipes with optional category/tag filters.
func (s *Service) ListRecipes(_ context.Context, limit, offset int, category, tag, sort string) ([]RecipeSummary, int, error) {
	rows, total, err := s.db.ListRecipes(limit, offset, category, tag, sort)
	if err != nil {
		return nil, 0, err
	}
	items := make([]RecipeSummary, len(rows))
	for i, r := range rows {
		items[i] = RecipeSummary{
			ID:         r.ID,
			Name:       r.Name,
			Category:   r.Category,
			Difficulty: r.Difficulty,
			Servings:   r.Servings,
			Tags:       nonNilSlice(r.Tags),
			UpdatedAt:  r.UpdatedAt,
		}
	}
	return items, total, nil
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// Stats returns the total and per-category counts of the indexed set.
func (s *Service) Stats(_ context.Context) (*StatsView, error) {
	counts, err := s.db.CategoryCounts()
	if err != nil {
		return nil, err
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	return &StatsView{Total: total, Categories: counts}, nil
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
