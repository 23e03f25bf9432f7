package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestFS(t *testing.T) (string, *FS) {
	t.Helper()
	dir := t.TempDir()
	f, err := NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, f
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNewFS_MissingRoot(t *testing.T) {
	if _, err := NewFS(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestList_MarkdownOnly(t *testing.T) {
	root, f := newTestFS(t)
	writeFile(t, root, "soup/冬瓜汤.md", "# 冬瓜汤\n")
	writeFile(t, root, "soup/photo.jpg", "binary")
	writeFile(t, root, "drink/柠檬水.md", "# 柠檬水\n")

	metas, err := f.List("")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("metas = %d, want 2", len(metas))
	}
	for _, m := range metas {
		if m.Checksum == "" {
			t.Errorf("checksum empty for %s", m.Path)
		}
		if filepath.IsAbs(m.Path) {
			t.Errorf("path should be relative: %s", m.Path)
		}
	}
}

func TestList_Subdir(t *testing.T) {
	root, f := newTestFS(t)
	writeFile(t, root, "soup/冬瓜汤.md", "# 冬瓜汤\n")
	writeFile(t, root, "drink/柠檬水.md", "# 柠檬水\n")

	metas, err := f.List("soup")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(metas) != 1 || metas[0].Path != "soup/冬瓜汤.md" {
		t.Errorf("metas = %+v", metas)
	}
}

func TestRead_TraversalRejected(t *testing.T) {
	_, f := newTestFS(t)
	if _, err := f.Read("../outside.md"); err == nil {
		t.Error("expected traversal rejection")
	}
	if _, err := f.Read("/etc/passwd"); err == nil {
		t.Error("expected absolute path rejection")
	}
}

func TestRead_RoundTrip(t *testing.T) {
	root, f := newTestFS(t)
	writeFile(t, root, "soup/冬瓜汤.md", "# 冬瓜汤\n")
	data, err := f.Read("soup/冬瓜汤.md")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "# 冬瓜汤\n" {
		t.Errorf("data = %q", string(data))
	}
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "records.json")

	if err := WriteAtomic(path, []byte("[]")); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("data = %q", string(data))
	}

	// Overwrite replaces content and leaves no temp files behind.
	if err := WriteAtomic(path, []byte("[1]")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("leftover files: %v", entries)
	}
}
