// Package corpus applies the document parser across the full recipe corpus
// and produces the ordered record set plus its statistics snapshot.
package corpus

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/starford/ladle/internal/models"
	"github.com/starford/ladle/internal/parser"
	"github.com/starford/ladle/internal/snapshot"
	"github.com/starford/ladle/internal/storage"
)

// Result is the outcome of one corpus build.
type Result struct {
	Recipes []models.Recipe
	Stats   snapshot.Stats
	// Checksums maps recipe ID to the source file's content digest,
	// letting the index skip unchanged documents.
	Checksums map[string]string
}

// Build parses every non-excluded document under the corpus root. Documents
// that fail to parse are logged and skipped; partial success is the designed
// outcome. The result is sorted by (category, name) ascending, with relative
// discovery order preserved on ties. Consumers rely on this ordering.
func Build(store storage.Provider, exclude []string, logger *slog.Logger) (*Result, error) {
	metas, err := store.List("")
	if err != nil {
		return nil, fmt.Errorf("corpus: discover: %w", err)
	}

	res := &Result{
		Recipes:   []models.Recipe{},
		Checksums: make(map[string]string, len(metas)),
	}
	for _, m := range metas {
		if Excluded(m.Path, exclude) {
			logger.Debug("corpus: excluded", slog.String("path", m.Path))
			continue
		}
		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("corpus: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		r, err := parser.Parse(data, m.Path)
		if err != nil {
			if errors.Is(err, parser.ErrNoTitle) {
				logger.Warn("corpus: document dropped", slog.String("path", m.Path), slog.String("reason", "no title"))
			} else {
				logger.Warn("corpus: parse failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			}
			continue
		}
		if len(r.Steps) == 0 {
			// Usually an unrecognized step convention; worth a human look.
			logger.Info("corpus: no steps extracted", slog.String("path", m.Path), slog.String("name", r.Name))
		}
		res.Recipes = append(res.Recipes, *r)
		res.Checksums[r.ID] = m.Checksum
	}

	sort.SliceStable(res.Recipes, func(i, j int) bool {
		a, b := res.Recipes[i], res.Recipes[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Name < b.Name
	})

	res.Stats = buildStats(res.Recipes)
	return res, nil
}

// Excluded reports whether path matches any of the doublestar patterns.
// Invalid patterns never match.
func Excluded(path string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, path); err == nil && ok {
			return true
		}
	}
	return false
}

func buildStats(recipes []models.Recipe) snapshot.Stats {
	s := snapshot.Stats{
		Total:      len(recipes),
		Categories: make(map[string]int),
		RecipeList: make([]string, 0, len(recipes)),
		Timestamp:  time.Now(),
	}
	for _, r := range recipes {
		s.Categories[r.Category]++
		s.RecipeList = append(s.RecipeList, r.Name)
	}
	return s
}
