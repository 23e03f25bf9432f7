// Package parser converts semi-structured Markdown recipe documents into
// normalized Recipe records. Every extractor degrades to a documented default
// instead of failing; the only unrecoverable condition is a missing title.
package parser

import (
	"errors"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/starford/ladle/internal/models"
)

// ErrNoTitle is returned when a document has no top-level heading. Such a
// document is unparseable and must be dropped by the caller.
var ErrNoTitle = errors.New("no title found")

// CategoryOther is the catch-all category for documents outside the known
// directory vocabulary.
const CategoryOther = "其他"

// categories maps corpus directory names to their Chinese category labels.
// The vocabulary is closed; anything else resolves to CategoryOther.
var categories = map[string]string{
	"aquatic":        "水产",
	"breakfast":      "早餐",
	"condiment":      "调料",
	"dessert":        "甜品",
	"drink":          "饮品",
	"meat_dish":      "荤菜",
	"semi-finished":  "半成品加工",
	"soup":           "汤羹",
	"staple":         "主食",
	"vegetable_dish": "素菜",
}

var (
	titleRe = regexp.MustCompile(`(?m)^\s*#\s+(.+)`)
	// First prose paragraph after the title heading, up to the next heading
	// or blank line.
	descriptionRe = regexp.MustCompile(`#[^#\n]+\n\n([^#\n][^\n]*(?:\n[^#\n][^\n]*)*)`)
)

// Parse converts one document into a Recipe. relPath is the document's
// location relative to the corpus root and drives the identifier, category,
// and filename tag.
func Parse(data []byte, relPath string) (*models.Recipe, error) {
	content := string(data)

	m := titleRe.FindStringSubmatch(content)
	if m == nil {
		return nil, ErrNoTitle
	}
	name := strings.TrimSpace(m[1])

	rel := filepath.ToSlash(relPath)
	id := strings.TrimSuffix(rel, ".md")
	category := resolveCategory(rel)

	description := ""
	if dm := descriptionRe.FindStringSubmatch(content); dm != nil {
		description = strings.TrimSpace(dm[1])
	}

	difficulty := extractDifficulty(content)

	return &models.Recipe{
		ID:          id,
		Name:        name,
		Description: description,
		SourcePath:  rel,
		Category:    category,
		Difficulty:  difficulty,
		Servings:    extractServings(content),
		Tags:        extractTags(category, path.Base(id), difficulty),
		Ingredients: nonNilSlice(extractIngredients(content)),
		Steps:       nonNilSlice(extractSteps(content)),
	}, nil
}

// resolveCategory maps the document's parent directory to a category,
// falling back to the grandparent for nested layouts, then to CategoryOther.
func resolveCategory(rel string) string {
	parts := strings.Split(rel, "/")
	if len(parts) >= 2 {
		if c, ok := categories[parts[len(parts)-2]]; ok {
			return c
		}
	}
	if len(parts) >= 3 {
		if c, ok := categories[parts[len(parts)-3]]; ok {
			return c
		}
	}
	return CategoryOther
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
