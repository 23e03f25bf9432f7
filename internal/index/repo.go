package index

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/starford/ladle/internal/apperr"
	"github.com/starford/ladle/internal/models"
)

// RecipeRow is the lightweight listing projection of an indexed recipe.
type RecipeRow struct {
	ID         string
	Name       string
	Category   string
	Difficulty int
	Servings   int
	Tags       []string
	Checksum   string
	UpdatedAt  time.Time
}

// SearchResult represents one search hit.
type SearchResult struct {
	ID       string
	Name     string
	Category string
	Snippet  string
}

// UpsertRecipe inserts or replaces a recipe and its FTS entry within a
// transaction. The full record is stored as JSON in the data column; flat
// columns exist for filtering and the LIKE search fallback.
func (db *DB) UpsertRecipe(r models.Recipe, checksum string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	tagsJSON, _ := json.Marshal(r.Tags)
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("index: marshal recipe: %w", err)
	}
	ingredients := ingredientNames(r.Ingredients)

	_, err = tx.Exec(`
		INSERT INTO recipes (id, name, category, difficulty, servings, tags, description, ingredients, checksum, data, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name        = excluded.name,
			category    = excluded.category,
			difficulty  = excluded.difficulty,
			servings    = excluded.servings,
			tags        = excluded.tags,
			description = excluded.description,
			ingredients = excluded.ingredients,
			checksum    = excluded.checksum,
			data        = excluded.data,
			updated_at  = excluded.updated_at
	`, r.ID, r.Name, r.Category, r.Difficulty, r.Servings, string(tagsJSON),
		r.Description, ingredients, checksum, string(data), time.Now())
	if err != nil {
		return fmt.Errorf("index: upsert recipe: %w", err)
	}

	// FTS upsert (no-op when the FTS5 tag is absent).
	if err := ftsUpsert(tx, r.ID, r.Name, r.Description, ingredients, strings.Join(r.Tags, " ")); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteRecipe removes a recipe and its FTS entry.
func (db *DB) DeleteRecipe(id string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, id)
	_, _ = tx.Exec(`DELETE FROM recipes WHERE id = ?`, id)

	return tx.Commit()
}

// GetRecipe returns the full stored record for id.
func (db *DB) GetRecipe(id string) (*models.Recipe, error) {
	var data string
	err := db.conn.QueryRow(`SELECT data FROM recipes WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("index: get recipe: %w", err)
	}
	var r models.Recipe
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return nil, fmt.Errorf("index: unmarshal recipe %s: %w", id, err)
	}
	return &r, nil
}

// ListRecipes returns a page of recipes with optional category and tag
// filters, plus the total count matching the filters.
func (db *DB) ListRecipes(limit, offset int, category, tag, sort string) ([]RecipeRow, int, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	where := "1=1"
	args := []any{}
	if category != "" {
		where += " AND category = ?"
		args = append(args, category)
	}
	if tag != "" {
		// Tags are stored as a JSON string array.
		where += " AND tags LIKE ?"
		args = append(args, `%"`+tag+`"%`)
	}

	var total int
	if err := db.conn.QueryRow(`SELECT count(*) FROM recipes WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count recipes: %w", err)
	}

	order := "category, name"
	switch sort {
	case "name":
		order = "name"
	case "difficulty":
		order = "difficulty, name"
	case "updated_at":
		order = "updated_at DESC"
	}

	query := `SELECT id, name, category, difficulty, servings, tags, checksum, updated_at
		FROM recipes WHERE ` + where + ` ORDER BY ` + order + ` LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list recipes: %w", err)
	}
	defer rows.Close()

	var out []RecipeRow
	for rows.Next() {
		var r RecipeRow
		var tagsJSON string
		if err := rows.Scan(&r.ID, &r.Name, &r.Category, &r.Difficulty, &r.Servings, &tagsJSON, &r.Checksum, &r.UpdatedAt); err != nil {
			return nil, 0, err
		}
		_ = json.Unmarshal([]byte(tagsJSON), &r.Tags)
		out = append(out, r)
	}
	return out, total, rows.Err()
}

// CategoryCounts returns the number of indexed recipes per category.
func (db *DB) CategoryCounts() (map[string]int, error) {
	rows, err := db.conn.Query(`SELECT category, count(*) FROM recipes GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("index: category counts: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var c string
		var n int
		if err := rows.Scan(&c, &n); err != nil {
			return nil, err
		}
		out[c] = n
	}
	return out, rows.Err()
}

// AllChecksums returns the stored checksum for every indexed recipe.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT id, checksum FROM recipes`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var id, cs string
		if err := rows.Scan(&id, &cs); err != nil {
			return nil, err
		}
		out[id] = cs
	}
	return out, rows.Err()
}

func ingredientNames(ings []models.Ingredient) string {
	names := make([]string, len(ings))
	for i, ing := range ings {
		names[i] = ing.Name
	}
	return strings.Join(names, " ")
}
