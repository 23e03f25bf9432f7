package internal

import (
	"fmt"
	"log/slog"

	"github.com/starford/ladle/internal/changelog"
	"github.com/starford/ladle/internal/corpus"
	"github.com/starford/ladle/internal/index"
	"github.com/starford/ladle/internal/snapshot"
	"github.com/starford/ladle/internal/storage"
)

// GenerateResult summarizes one batch run for the caller.
type GenerateResult struct {
	Stats    snapshot.Stats
	Delta    *snapshot.Delta
	FirstRun bool
}

// Generate runs the batch pipeline: build the record set from the corpus,
// write it out, diff against the prior snapshot, splice the changelog, persist
// the new snapshot, and refresh the SQLite index. Changelog and index failures
// are logged but do not fail the run; the records and snapshot writes do.
func Generate(cfg *Config, logger *slog.Logger) (*GenerateResult, error) {
	store, err := storage.NewFS(cfg.Corpus.Path)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	res, err := corpus.Build(store, cfg.Corpus.Exclude, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("corpus built",
		slog.Int("recipes", res.Stats.Total),
		slog.Int("categories", len(res.Stats.Categories)))

	out, err := corpus.EncodeRecords(res.Recipes)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	if err := storage.WriteAtomic(cfg.Output.Records, out); err != nil {
		return nil, fmt.Errorf("write records: %w", err)
	}

	prior, err := snapshot.Load(cfg.Output.Snapshot)
	if err != nil {
		// Unreadable snapshot degrades to a first run rather than aborting.
		logger.Warn("prior snapshot unreadable, treating as first run",
			slog.String("path", cfg.Output.Snapshot),
			slog.String("error", err.Error()))
		prior = nil
	}
	firstRun := prior == nil

	delta := snapshot.Diff(prior, &res.Stats)
	if cfg.Output.Changelog != "" {
		block := changelog.Render(delta, &res.Stats, firstRun)
		if err := changelog.Update(cfg.Output.Changelog, block); err != nil {
			logger.Warn("changelog update failed",
				slog.String("path", cfg.Output.Changelog),
				slog.String("error", err.Error()))
		}
	}

	if err := snapshot.Save(cfg.Output.Snapshot, &res.Stats); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		logger.Warn("index unavailable", slog.String("error", err.Error()))
	} else {
		defer db.Close()
		if err := index.Sync(db, res.Recipes, res.Checksums, logger); err != nil {
			logger.Warn("index sync failed", slog.String("error", err.Error()))
		}
	}

	return &GenerateResult{
		Stats:    res.Stats,
		Delta:    delta,
		FirstRun: firstRun,
	}, nil
}
