// Package changelog renders snapshot deltas as human-readable changelog
// entries and splices them into an existing changelog document.
package changelog

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/starford/ladle/internal/snapshot"
	"github.com/starford/ladle/internal/storage"
)

// maxAddedListed caps the number of added recipe names in one entry.
// Removed names are always listed in full.
const maxAddedListed = 10

// Render produces a changelog block for the given delta. Every run leaves a
// trace: an empty delta renders a verification notice, and the first run
// (firstRun=true, which the Delta itself cannot express) renders an initial
// generation notice. The first line is a heading that Update strips when
// splicing.
func Render(d *snapshot.Delta, current *snapshot.Stats, firstRun bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## 菜谱数据更新（%s）\n\n", current.Timestamp.Format("2006-01-02"))

	switch {
	case firstRun:
		fmt.Fprintf(&b, "首次生成菜谱数据，共 %d 个菜谱。\n", current.Total)
	case d.Empty():
		fmt.Fprintf(&b, "菜谱数据无变化，已校验（共 %d 个菜谱）。\n", current.Total)
	default:
		fmt.Fprintf(&b, "新增 %d 个菜谱，移除 %d 个菜谱，总数 %d → %d。\n",
			len(d.Added), len(d.Removed), current.Total-d.TotalChange, current.Total)

		if len(d.CategoryChanges) > 0 {
			b.WriteString("\n分类变化：\n")
			cats := make([]string, 0, len(d.CategoryChanges))
			for c := range d.CategoryChanges {
				cats = append(cats, c)
			}
			sort.Strings(cats)
			for _, c := range cats {
				cc := d.CategoryChanges[c]
				fmt.Fprintf(&b, "- %s：%d → %d（%+d）\n", c, cc.Old, cc.New, cc.Change)
			}
		}

		if len(d.Added) > 0 {
			b.WriteString("\n新增菜谱：\n")
			added := append([]string(nil), d.Added...)
			sort.Strings(added)
			listed := added
			if len(listed) > maxAddedListed {
				listed = listed[:maxAddedListed]
			}
			for _, name := range listed {
				fmt.Fprintf(&b, "- %s\n", name)
			}
			if rest := len(added) - len(listed); rest > 0 {
				fmt.Fprintf(&b, "- ……以及另外 %d 个\n", rest)
			}
		}

		if len(d.Removed) > 0 {
			b.WriteString("\n移除菜谱：\n")
			removed := append([]string(nil), d.Removed...)
			sort.Strings(removed)
			for _, name := range removed {
				fmt.Fprintf(&b, "- %s\n", name)
			}
		}
	}

	return b.String()
}

// Update splices block (with its own heading stripped) into the changelog
// document at path, directly below the first "Unreleased" heading and any
// blank lines that follow it. A missing changelog file disables insertion
// silently; the rest of the document is preserved verbatim.
func Update(path, block string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("changelog: read %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	at := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.Contains(trimmed, "Unreleased") {
			at = i + 1
			break
		}
	}
	if at < 0 {
		// No Unreleased section; leave the document untouched.
		return nil
	}
	for at < len(lines) && strings.TrimSpace(lines[at]) == "" {
		at++
	}

	body := strings.Split(strings.TrimRight(stripHeading(block), "\n"), "\n")
	body = append(body, "")

	out := make([]string, 0, len(lines)+len(body))
	out = append(out, lines[:at]...)
	out = append(out, body...)
	out = append(out, lines[at:]...)

	if err := storage.WriteAtomic(path, []byte(strings.Join(out, "\n"))); err != nil {
		return fmt.Errorf("changelog: write %s: %w", path, err)
	}
	return nil
}

// stripHeading drops the block's leading heading line and any blank lines
// after it.
func stripHeading(block string) string {
	lines := strings.Split(block, "\n")
	i := 0
	if i < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i]), "#") {
		i++
	}
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	return strings.Join(lines[i:], "\n")
}
