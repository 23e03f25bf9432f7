package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/starford/ladle/internal/models"
)

var (
	difficultyRe      = regexp.MustCompile(`预估烹饪难度[：:]\s*([★☆]+)`)
	servingsBatchRe   = regexp.MustCompile(`一份正好够\s*(\d+)\s*个?人`)
	servingsPortionRe = regexp.MustCompile(`(\d+)\s*人份`)

	// Section bodies run from the line after the heading to the next
	// "##" heading or the end of the document.
	materialsRe  = regexp.MustCompile(`(?s)## 必备原料和工具\s*\n(.*?)\n(?:##|$)`)
	calcRe       = regexp.MustCompile(`(?s)## 计算\s*\n(.*?)\n(?:##|$)`)
	operationsRe = regexp.MustCompile(`(?s)## 操作\s*\n(.*?)\n(?:##|$)`)

	parenRe      = regexp.MustCompile(`[（(].*?[）)]`)
	annotationRe = regexp.MustCompile(`[：:].*$`)
	// Leading numeric literal with an optional unit token. \w would only
	// cover ASCII; units are usually CJK (个, 克, 毫升).
	quantityRe    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([\p{L}\p{N}_]*)`)
	numericStepRe = regexp.MustCompile(`^\d+\.\s+`)
	bareAmountRe  = regexp.MustCompile(`\s+\d+`)
)

// Tool/utensil keywords. Ingredient lines whose normalized name contains any
// of these are discarded entirely. The three lists differ on purpose: the
// materials section historically filtered fewer keywords than the
// calculation section.
var (
	materialToolWords = []string{"工具", "锅", "盆"}
	calcToolWords     = []string{"工具", "锅", "盆", "刀", "板", "杯", "勺"}
	bareToolWords     = []string{"工具", "锅", "盆", "刀", "板"}
)

// extractDifficulty counts the filled stars after the difficulty label.
// A document without the label defaults to 1.
func extractDifficulty(content string) int {
	m := difficultyRe.FindStringSubmatch(content)
	if m == nil {
		return 1
	}
	return strings.Count(m[1], "★")
}

// extractServings tries the "one batch serves N" phrasing first, then the
// "N-person portion" phrasing. Default is 2.
func extractServings(content string) int {
	for _, re := range []*regexp.Regexp{servingsBatchRe, servingsPortionRe} {
		if m := re.FindStringSubmatch(content); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n
			}
		}
	}
	return 2
}

// sectionBody returns the text of the named section, or ok=false when the
// heading is absent.
func sectionBody(content string, re *regexp.Regexp) (string, bool) {
	m := re.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func isBullet(line string) bool {
	return strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "+")
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// extractIngredients merges two passes: bare mentions from the materials
// section, then detailed amounts from the calculation section. Duplicates are
// resolved by name with the first occurrence winning, so a materials-section
// mention shadows a later calculation-section entry. This precedence is part
// of the interchange contract; do not reorder the passes.
func extractIngredients(content string) []models.Ingredient {
	var out []models.Ingredient

	if body, ok := sectionBody(content, materialsRe); ok {
		out = append(out, materialsPass(body)...)
	}
	if body, ok := sectionBody(content, calcRe); ok {
		out = append(out, calculationPass(body)...)
	}

	seen := make(map[string]struct{}, len(out))
	unique := out[:0]
	for _, ing := range out {
		if _, dup := seen[ing.Name]; dup {
			continue
		}
		seen[ing.Name] = struct{}{}
		unique = append(unique, ing)
	}
	return unique
}

// materialsPass yields one nameless-quantity ingredient per bullet line,
// excluding the note line and anything naming a tool.
func materialsPass(body string) []models.Ingredient {
	var out []models.Ingredient
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		if !isBullet(line) || strings.HasPrefix(line, "- 注：") {
			continue
		}
		name := strings.TrimSpace(line[1:])
		name = parenRe.ReplaceAllString(name, "")
		name = strings.TrimSpace(annotationRe.ReplaceAllString(name, ""))
		if name == "" || containsAny(name, materialToolWords) {
			continue
		}
		out = append(out, models.Ingredient{Name: name, TextQuantity: line})
	}
	return out
}

// calculationPass parses "name：amount unit" bullet lines; bulleted lines
// without a colon are treated as bare mentions unless they carry the
// portion marker.
func calculationPass(body string) []models.Ingredient {
	var out []models.Ingredient
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		if !isBullet(line) {
			continue
		}

		if strings.Contains(line, "：") || strings.Contains(line, ":") {
			if ing, ok := parseDetailedLine(line); ok {
				out = append(out, ing)
			}
			continue
		}

		text := strings.TrimSpace(line[1:])
		if text == "" || strings.Contains(text, "份数") {
			continue
		}
		name := strings.TrimSpace(bareAmountRe.Split(text, 2)[0])
		name = strings.TrimSpace(parenRe.ReplaceAllString(name, ""))
		if name == "" || containsAny(name, bareToolWords) {
			continue
		}
		out = append(out, models.Ingredient{Name: name, TextQuantity: line})
	}
	return out
}

// parseDetailedLine splits a bullet line at its first colon (either glyph)
// into a name and a quantity expression.
func parseDetailedLine(line string) (models.Ingredient, bool) {
	text := strings.TrimSpace(line[1:])
	sep := "："
	if !strings.Contains(text, sep) {
		sep = ":"
	}
	idx := strings.Index(text, sep)
	if idx < 0 {
		return models.Ingredient{}, false
	}
	name := strings.TrimSpace(text[:idx])
	if name == "" || containsAny(name, calcToolWords) {
		return models.Ingredient{}, false
	}

	ing := models.Ingredient{Name: name, TextQuantity: line}
	if m := quantityRe.FindStringSubmatch(text[idx+len(sep):]); m != nil {
		if q, err := strconv.ParseFloat(m[1], 64); err == nil {
			ing.Quantity = &q
			if m[2] != "" {
				unit := m[2]
				ing.Unit = &unit
			}
		}
	}
	return ing, true
}

// extractSteps collects steps from the operations section. Four markers are
// recognized (-, *, +, and "N." prefixes); numbering is reassigned
// sequentially from 1 and never taken from the source.
func extractSteps(content string) []models.Step {
	body, ok := sectionBody(content, operationsRe)
	if !ok {
		return nil
	}

	var steps []models.Step
	n := 1
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)

		var description string
		switch {
		case isBullet(line) && utf8.RuneCountInString(line) > 2:
			description = strings.TrimSpace(line[1:])
		case numericStepRe.MatchString(line):
			description = strings.TrimSpace(numericStepRe.ReplaceAllString(line, ""))
		default:
			continue
		}

		// "--" is an empty placeholder some documents carry.
		if description == "" || description == "--" {
			continue
		}
		steps = append(steps, models.Step{Step: n, Description: description})
		n++
	}
	return steps
}

// extractTags builds the ordered tag list: category, filename stem (when
// distinct), then a complexity tag derived from difficulty.
func extractTags(category, stem string, difficulty int) []string {
	tags := []string{category}
	if stem != category {
		tags = append(tags, stem)
	}
	switch {
	case difficulty >= 4:
		tags = append(tags, "复杂")
	case difficulty <= 2:
		tags = append(tags, "简单")
	}
	return tags
}
