// Package models defines the domain types for Ladle.
package models

// Recipe is the normalized record produced from one Markdown recipe document.
// Field names and types form the persisted interchange contract consumed by
// downstream search/retrieval components; do not rename JSON keys.
type Recipe struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	SourcePath  string       `json:"source_path"`
	Category    string       `json:"category"`
	Difficulty  int          `json:"difficulty"`
	Servings    int          `json:"servings"`
	Tags        []string     `json:"tags"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []Step       `json:"steps"`
}

// Ingredient is one normalized ingredient entry. Quantity and Unit are nil
// when the source line carried no parseable amount; TextQuantity always holds
// the verbatim source line. Notes is a reserved field, currently always nil.
type Ingredient struct {
	Name         string   `json:"name"`
	Quantity     *float64 `json:"quantity"`
	Unit         *string  `json:"unit"`
	TextQuantity string   `json:"text_quantity"`
	Notes        *string  `json:"notes"`
}

// Step is one preparation step. Step numbers are assigned by parse order,
// contiguous from 1, regardless of any numbering in the source document.
type Step struct {
	Step        int    `json:"step"`
	Description string `json:"description"`
}
