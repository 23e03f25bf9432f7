package index

import "github.com/starford/ladle/internal/models"

// RecipeIndex defines the interface for recipe indexing operations.
// Consumers should depend on this interface rather than the concrete *DB
// type to facilitate testing with mocks.
type RecipeIndex interface {
	UpsertRecipe(r models.Recipe, checksum string) error
	DeleteRecipe(id string) error
	GetRecipe(id string) (*models.Recipe, error)
	ListRecipes(limit, offset int, category, tag, sort string) ([]RecipeRow, int, error)
	Search(query string, limit int) ([]SearchResult, error)
	CategoryCounts() (map[string]int, error)
	AllChecksums() (map[string]string, error)
	Close() error
}

// Verify *DB satisfies RecipeIndex at compile time.
var _ RecipeIndex = (*DB)(nil)
