package index

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/starford/ladle/internal/checksum"
	"github.com/starford/ladle/internal/models"
	"github.com/starford/ladle/internal/parser"
)

// Sync brings the index in line with a freshly built record set:
//   - new/changed recipes (by source checksum) are upserted
//   - recipes that vanished from the corpus are deleted
func Sync(db *DB, recipes []models.Recipe, sums map[string]string, logger *slog.Logger) error {
	stored, err := db.AllChecksums()
	if err != nil {
		return err
	}

	kept := make(map[string]struct{}, len(recipes))
	for _, r := range recipes {
		kept[r.ID] = struct{}{}

		cs := sums[r.ID]
		if cs != "" && stored[r.ID] == cs {
			continue
		}
		if err := db.UpsertRecipe(r, cs); err != nil {
			logger.Warn("sync: index failed", slog.String("id", r.ID), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("id", r.ID))
		}
	}

	// Remove stale entries.
	for id := range stored {
		if _, ok := kept[id]; !ok {
			if err := db.DeleteRecipe(id); err != nil {
				logger.Warn("sync: delete failed", slog.String("id", id), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("id", id))
			}
		}
	}

	return nil
}

// recipeID converts a corpus-relative file path to a record identifier.
func recipeID(rel string) string {
	return strings.TrimSuffix(filepath.ToSlash(rel), ".md")
}

// indexFile parses one document and upserts the result. Parser errors
// (including ErrNoTitle) propagate to the caller.
func indexFile(db *DB, rel string, data []byte) error {
	r, err := parser.Parse(data, rel)
	if err != nil {
		return err
	}
	return db.UpsertRecipe(*r, checksum.Sum(data))
}
