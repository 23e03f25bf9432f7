package snapshot

// CategoryChange records one category whose count moved between runs.
type CategoryChange struct {
	Old    int `json:"old"`
	New    int `json:"new"`
	Change int `json:"change"`
}

// Delta is the structured difference between two snapshots. Added and
// Removed carry recipe names in no particular order; callers sort at render
// time.
type Delta struct {
	TotalChange     int                       `json:"total_change"`
	CategoryChanges map[string]CategoryChange `json:"category_changes"`
	Added           []string                  `json:"added"`
	Removed         []string                  `json:"removed"`
	Timestamp       string                    `json:"timestamp"`
}

// Empty reports whether the delta describes no movement: no total change and
// no per-category changes.
func (d *Delta) Empty() bool {
	return d.TotalChange == 0 && len(d.CategoryChanges) == 0
}

// Diff computes the delta from prior to current. A nil prior means first
// run: the result is a zero delta, and the caller is responsible for
// surfacing the first-run state since the Delta itself does not encode it.
func Diff(prior, current *Stats) *Delta {
	d := &Delta{
		CategoryChanges: map[string]CategoryChange{},
		Added:           []string{},
		Removed:         []string{},
		Timestamp:       current.Timestamp.Format("2006-01-02 15:04:05"),
	}
	if prior == nil {
		return d
	}

	d.TotalChange = current.Total - prior.Total

	union := make(map[string]struct{}, len(prior.Categories)+len(current.Categories))
	for c := range prior.Categories {
		union[c] = struct{}{}
	}
	for c := range current.Categories {
		union[c] = struct{}{}
	}
	for c := range union {
		oldN, newN := prior.Categories[c], current.Categories[c]
		if oldN != newN {
			d.CategoryChanges[c] = CategoryChange{Old: oldN, New: newN, Change: newN - oldN}
		}
	}

	// Set difference over names: duplicate names collapse, so a rename is
	// one added and one removed entry.
	before := nameSet(prior.RecipeList)
	after := nameSet(current.RecipeList)
	for name := range after {
		if _, ok := before[name]; !ok {
			d.Added = append(d.Added, name)
		}
	}
	for name := range before {
		if _, ok := after[name]; !ok {
			d.Removed = append(d.Removed, name)
		}
	}
	return d
}

func nameSet(names []string) map[string]struct{} {
	s := make(map[string]struct{}, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}
