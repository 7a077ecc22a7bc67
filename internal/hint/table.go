package hint

import (
	"fmt"
	"strings"

	"github.com/mj1618/winhint/internal/model"
)

// Measurer reports the ink extents of a label in the overlay font.
type Measurer interface {
	Measure(text string) (Extents, error)
}

// Entry binds one hint label to its window and on-screen placement.
type Entry struct {
	Label     string       `yaml:"label"     json:"label"`
	Window    model.Window `yaml:"window"    json:"window"`
	Placement Placement    `yaml:"placement" json:"placement"`
}

// Table maps hint labels to windows. It is built once before the overlay is
// shown and not modified afterwards.
type Table struct {
	entries []Entry
	index   map[string]int
}

// BuildTable assigns a label to every window, measures it and resolves the
// label boxes. Windows are processed in row-major position order; the input
// slice is not modified.
func BuildTable(windows []model.Window, chars string, margin float64, m Measurer) (*Table, error) {
	sorted := append([]model.Window(nil), windows...)
	model.SortByPosition(sorted)

	gen, err := NewGenerator(chars, len(sorted))
	if err != nil {
		return nil, err
	}

	t := &Table{
		entries: make([]Entry, 0, len(sorted)),
		index:   make(map[string]int, len(sorted)),
	}
	used := make(map[string]bool, len(sorted))
	resolver := NewResolver(margin)
	for _, w := range sorted {
		label, err := gen.Next(used)
		if err != nil {
			return nil, fmt.Errorf("label for %s: %w", w, err)
		}
		used[label] = true

		ext, err := m.Measure(label)
		if err != nil {
			return nil, fmt.Errorf("measure label %q: %w", label, err)
		}
		placement := resolver.Place(w.X, w.Y, ext)

		t.index[label] = len(t.entries)
		t.entries = append(t.entries, Entry{Label: label, Window: w, Placement: placement})
	}
	return t, nil
}

// Len returns the number of labelled windows.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the entries in assignment order.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Lookup returns the entry whose label is exactly label.
func (t *Table) Lookup(label string) (Entry, bool) {
	i, ok := t.index[label]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// HasPrefix reports whether prefix is a proper prefix of at least one label.
func (t *Table) HasPrefix(prefix string) bool {
	for _, e := range t.entries {
		if len(e.Label) > len(prefix) && strings.HasPrefix(e.Label, prefix) {
			return true
		}
	}
	return false
}

// Match classifies typed input against the table.
func (t *Table) Match(typed string) MatchKind {
	if _, ok := t.index[typed]; ok {
		return MatchExact
	}
	if t.HasPrefix(typed) {
		return MatchPrefix
	}
	return MatchNone
}

// MatchKind is the result of matching typed input against the labels.
type MatchKind int

const (
	// MatchNone means no label starts with the input.
	MatchNone MatchKind = iota
	// MatchPrefix means the input is a proper prefix of one or more labels.
	MatchPrefix
	// MatchExact means the input is exactly one label.
	MatchExact
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchPrefix:
		return "prefix"
	default:
		return "none"
	}
}
