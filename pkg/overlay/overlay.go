// Package overlay implements the location-keyed literal substitution layer
// ("sweet mode") applied to narration when enabled.
package overlay

import (
	"maps"
	"slices"
	"strings"
)

// Pair is one literal substitution.
type Pair struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Table maps a location identifier to its substitutions in source order.
// A Table is read-only once built.
type Table struct {
	entries map[string][]Pair
}

// NewTable builds a Table from already-ordered pairs. Pairs with an empty
// From are dropped since they would match everywhere.
func NewTable(entries map[string][]Pair) *Table {
	t := &Table{entries: make(map[string][]Pair, len(entries))}
	for loc, pairs := range entries {
		for _, p := range pairs {
			if p.From == "" {
				continue
			}
			t.entries[loc] = append(t.entries[loc], p)
		}
	}
	return t
}

// Empty returns a table with no substitutions.
func Empty() *Table {
	return NewTable(nil)
}

// Len returns the number of locations with at least one substitution.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Locations returns the location keys, sorted.
func (t *Table) Locations() []string {
	if t == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(t.entries))
}

// Pairs returns a copy of the substitutions for location.
func (t *Table) Pairs(location string) []Pair {
	if t == nil {
		return nil
	}
	return append([]Pair(nil), t.entries[location]...)
}

// Apply substitutes text for location. Keys are applied one after another
// in table order; text produced by an earlier key is never searched by a
// later one.
func (t *Table) Apply(location, text string) string {
	if t == nil {
		return text
	}
	pairs, ok := t.entries[location]
	if !ok {
		return text
	}

	segs := []segment{{text: text}}
	for _, p := range pairs {
		segs = replaceIn(segs, p)
	}

	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.text)
	}
	return b.String()
}

// segment is a run of output text. Replaced segments are closed to later
// keys.
type segment struct {
	text     string
	replaced bool
}

func replaceIn(segs []segment, p Pair) []segment {
	out := make([]segment, 0, len(segs))
	for _, s := range segs {
		if s.replaced || !strings.Contains(s.text, p.From) {
			out = append(out, s)
			continue
		}
		for i, part := range strings.Split(s.text, p.From) {
			if i > 0 {
				out = append(out, segment{text: p.To, replaced: true})
			}
			if part != "" {
				out = append(out, segment{text: part})
			}
		}
	}
	return out
}

// Render applies the table only when enabled is true. With enabled false
// the output never depends on the table's contents.
func Render(t *Table, enabled bool, location, text string) string {
	if !enabled {
		return text
	}
	return t.Apply(location, text)
}
