// Package snapshot persists per-run corpus statistics and computes the
// delta between two successive runs.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/starford/ladle/internal/storage"
)

// Stats summarizes one run's record set. RecipeList holds recipe names (not
// identifiers); change detection compares runs by name.
type Stats struct {
	Total      int            `json:"total"`
	Categories map[string]int `json:"categories"`
	RecipeList []string       `json:"recipe_list"`
	Timestamp  time.Time      `json:"timestamp"`
}

// Load reads a persisted snapshot. A missing file is the first-run state and
// yields (nil, nil); any other failure is reported so the caller can decide
// to degrade to first-run behavior.
func Load(path string) (*Stats, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %s: %w", path, err)
	}
	var s Stats
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("snapshot: parse %s: %w", path, err)
	}
	return &s, nil
}

// Save atomically overwrites the snapshot file.
func Save(path string, s *Stats) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: marshal: %w", err)
	}
	if err := storage.WriteAtomic(path, append(data, '\n')); err != nil {
		return fmt.Errorf("snapshot: save %s: %w", path, err)
	}
	return nil
}
