package changelog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/starford/ladle/internal/snapshot"
)

func testStats(total int) *snapshot.Stats {
	return &snapshot.Stats{
		Total:     total,
		Timestamp: time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
	}
}

func TestRender_FirstRun(t *testing.T) {
	d := snapshot.Diff(nil, testStats(12))
	got := Render(d, testStats(12), true)
	if !strings.Contains(got, "## 菜谱数据更新（2026-08-28）") {
		t.Errorf("missing heading: %q", got)
	}
	if !strings.Contains(got, "首次生成菜谱数据，共 12 个菜谱。") {
		t.Errorf("missing first-run notice: %q", got)
	}
}

func TestRender_NoChange(t *testing.T) {
	d := &snapshot.Delta{CategoryChanges: map[string]snapshot.CategoryChange{}}
	got := Render(d, testStats(7), false)
	if !strings.Contains(got, "菜谱数据无变化，已校验（共 7 个菜谱）。") {
		t.Errorf("missing no-change notice: %q", got)
	}
}

func TestRender_AddedRemoved(t *testing.T) {
	d := &snapshot.Delta{
		TotalChange: 1,
		CategoryChanges: map[string]snapshot.CategoryChange{
			"荤菜": {Old: 3, New: 4, Change: 1},
		},
		Added:   []string{"红烧肉", "回锅肉"},
		Removed: []string{"地三鲜"},
	}
	got := Render(d, testStats(10), false)

	if !strings.Contains(got, "新增 2 个菜谱，移除 1 个菜谱，总数 9 → 10。") {
		t.Errorf("headline wrong: %q", got)
	}
	if !strings.Contains(got, "- 荤菜：3 → 4（+1）") {
		t.Errorf("category line wrong: %q", got)
	}
	if !strings.Contains(got, "- 红烧肉\n") || !strings.Contains(got, "- 地三鲜\n") {
		t.Errorf("name lists wrong: %q", got)
	}
}

func TestRender_AddedTruncation(t *testing.T) {
	added := make([]string, 13)
	for i := range added {
		added[i] = fmt.Sprintf("菜谱%02d", i)
	}
	d := &snapshot.Delta{TotalChange: 13, Added: added, CategoryChanges: map[string]snapshot.CategoryChange{}}
	got := Render(d, testStats(20), false)

	if !strings.Contains(got, "- ……以及另外 3 个") {
		t.Errorf("missing truncation suffix: %q", got)
	}
	if strings.Contains(got, "菜谱12") {
		t.Errorf("names past the cap must not be listed: %q", got)
	}
	if !strings.Contains(got, "菜谱09") {
		t.Errorf("first 10 names should be listed: %q", got)
	}
}

func TestRender_RemovedNeverTruncated(t *testing.T) {
	removed := make([]string, 15)
	for i := range removed {
		removed[i] = fmt.Sprintf("旧菜%02d", i)
	}
	d := &snapshot.Delta{TotalChange: -15, Removed: removed, CategoryChanges: map[string]snapshot.CategoryChange{}}
	got := Render(d, testStats(5), false)
	for _, n := range removed {
		if !strings.Contains(got, "- "+n+"\n") {
			t.Errorf("removed list missing %q", n)
		}
	}
}

func TestUpdate_SplicesBelowUnreleased(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	doc := "# Changelog\n\n## Unreleased\n\n## v1.0\n\n- old entry\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	block := "## 菜谱数据更新（2026-08-28）\n\n首次生成菜谱数据，共 3 个菜谱。\n"
	if err := Update(path, block); err != nil {
		t.Fatalf("update: %v", err)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(out)

	// Block body lands between Unreleased and v1.0, heading stripped.
	iUnreleased := strings.Index(got, "## Unreleased")
	iBody := strings.Index(got, "首次生成菜谱数据")
	iV1 := strings.Index(got, "## v1.0")
	if iUnreleased < 0 || iBody < 0 || iV1 < 0 {
		t.Fatalf("output missing sections: %q", got)
	}
	if !(iUnreleased < iBody && iBody < iV1) {
		t.Errorf("splice position wrong: %q", got)
	}
	if strings.Contains(got, "菜谱数据更新") {
		t.Errorf("block heading should be stripped: %q", got)
	}
	if !strings.Contains(got, "- old entry") {
		t.Errorf("existing content lost: %q", got)
	}
}

func TestUpdate_MissingFileIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	if err := Update(path, "## x\n\nbody\n"); err != nil {
		t.Fatalf("update on missing file: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("missing changelog must not be created")
	}
}

func TestUpdate_NoUnreleasedHeading(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	doc := "# Changelog\n\n## v1.0\n\n- old entry\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Update(path, "## x\n\nbody\n"); err != nil {
		t.Fatalf("update: %v", err)
	}
	out, _ := os.ReadFile(path)
	if string(out) != doc {
		t.Errorf("document without Unreleased heading must stay untouched:\n%q", string(out))
	}
}
