package index

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/starford/ladle/internal/storage"
)

// watcherTestEnv sets up a corpus dir, storage, and DB for watcher tests.
func watcherTestEnv(t *testing.T) (string, storage.Provider, *DB) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store, testDB(t)
}

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func indexed(db *DB, id string) bool {
	sums, err := db.AllChecksums()
	if err != nil {
		return false
	}
	_, ok := sums[id]
	return ok
}

func TestWatcher_NewFileIndexed(t *testing.T) {
	dir, store, db := watcherTestEnv(t)
	logger := slog.New(slog.DiscardHandler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var events []string

	go Watch(ctx, db, store, dir, nil, logger, func(kind, id string) {
		mu.Lock()
		events = append(events, kind+":"+id)
		mu.Unlock()
	})

	time.Sleep(100 * time.Millisecond)

	_ = os.WriteFile(filepath.Join(dir, "new.md"), []byte("# 新菜\n"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return indexed(db, "new")
	}, "new file not indexed by watcher")

	eventually(t, 2*time.Second, 50*time.Millisecond, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, e := range events {
			if e == "created:new" {
				return true
			}
		}
		return false
	}, "expected created:new callback")
}

func TestWatcher_SkipFilter(t *testing.T) {
	dir, store, db := watcherTestEnv(t)
	logger := slog.New(slog.DiscardHandler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	skip := func(rel string) bool { return rel == "template.md" }
	go Watch(ctx, db, store, dir, skip, logger, nil)
	time.Sleep(100 * time.Millisecond)

	_ = os.WriteFile(filepath.Join(dir, "template.md"), []byte("# 模板\n"), 0o644)
	_ = os.WriteFile(filepath.Join(dir, "real.md"), []byte("# 真菜\n"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return indexed(db, "real")
	}, "non-excluded file not indexed")

	if indexed(db, "template") {
		t.Error("excluded file must not be indexed")
	}
}

func TestWatcher_NewDirWatched(t *testing.T) {
	dir, store, db := watcherTestEnv(t)
	logger := slog.New(slog.DiscardHandler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Watch(ctx, db, store, dir, nil, logger, nil)
	time.Sleep(100 * time.Millisecond)

	subDir := filepath.Join(dir, "soup")
	_ = os.MkdirAll(subDir, 0o755)
	time.Sleep(100 * time.Millisecond)

	_ = os.WriteFile(filepath.Join(subDir, "冬瓜汤.md"), []byte("# 冬瓜汤\n"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return indexed(db, "soup/冬瓜汤")
	}, "file in new subdir not indexed by watcher")
}

func TestWatcher_DeleteRemovesFromIndex(t *testing.T) {
	dir, store, db := watcherTestEnv(t)
	logger := slog.New(slog.DiscardHandler)

	path := filepath.Join(dir, "del.md")
	_ = os.WriteFile(path, []byte("# 删除我\n"), 0o644)
	if err := indexFile(db, "del.md", []byte("# 删除我\n")); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Watch(ctx, db, store, dir, nil, logger, nil)
	time.Sleep(100 * time.Millisecond)

	_ = os.Remove(path)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return !indexed(db, "del")
	}, "deleted file still in index")
}

func TestWatcher_RenameReconciles(t *testing.T) {
	dir, store, db := watcherTestEnv(t)
	logger := slog.New(slog.DiscardHandler)

	_ = os.WriteFile(filepath.Join(dir, "old.md"), []byte("# 改名\n"), 0o644)
	if err := indexFile(db, "old.md", []byte("# 改名\n")); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Watch(ctx, db, store, dir, nil, logger, nil)
	time.Sleep(100 * time.Millisecond)

	_ = os.Rename(filepath.Join(dir, "old.md"), filepath.Join(dir, "renamed.md"))

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return !indexed(db, "old") && indexed(db, "renamed")
	}, "rename reconciliation failed: old id should be removed and new id indexed")
}

func TestWatcher_UntitledDocumentDropped(t *testing.T) {
	dir, store, db := watcherTestEnv(t)
	logger := slog.New(slog.DiscardHandler)

	_ = os.WriteFile(filepath.Join(dir, "a.md"), []byte("# 有标题\n"), 0o644)
	if err := indexFile(db, "a.md", []byte("# 有标题\n")); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Watch(ctx, db, store, dir, nil, logger, nil)
	time.Sleep(100 * time.Millisecond)

	// The document loses its title; the index entry must go away.
	_ = os.WriteFile(filepath.Join(dir, "a.md"), []byte("标题没了\n"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return !indexed(db, "a")
	}, "untitled document should be dropped from index")
}
