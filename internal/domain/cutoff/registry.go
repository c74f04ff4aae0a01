// Package cutoff holds the admission thresholds for one admission cycle,
// keyed by sponsorship category and program name.
package cutoff

import "fmt"

// Freshman program keys used by the fallback rule. Both live in the
// self-sponsored table.
const (
	NaturalFreshmanProgram = "Natural Science Freshman Program_Self"
	SocialFreshmanProgram  = "Social Science Freshman Program_Self"
)

// Entry is one program threshold under a category.
type Entry struct {
	Program   string  `json:"program"`
	Threshold float64 `json:"cutoff"`
}

// Table is an ordered list of entries for one category.
type Table struct {
	Category Category
	Entries  []Entry
}

type table struct {
	order      []string
	thresholds map[string]float64
}

// Registry is an immutable two-level mapping category -> program -> threshold.
// It is safe for concurrent reads.
type Registry struct {
	tables map[Category]table
}

// New builds a registry from ordered tables. Program order inside each table is
// preserved by Programs.
func New(tables ...Table) (*Registry, error) {
	r := &Registry{tables: make(map[Category]table, len(tables))}
	for _, t := range tables {
		if !t.Category.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, t.Category)
		}
		if _, exists := r.tables[t.Category]; exists {
			return nil, fmt.Errorf("%w: category %s declared twice", ErrDuplicateProgram, t.Category)
		}
		tb := table{
			order:      make([]string, 0, len(t.Entries)),
			thresholds: make(map[string]float64, len(t.Entries)),
		}
		for _, e := range t.Entries {
			if _, dup := tb.thresholds[e.Program]; dup {
				return nil, fmt.Errorf("%w: %q under %s", ErrDuplicateProgram, e.Program, t.Category)
			}
			tb.order = append(tb.order, e.Program)
			tb.thresholds[e.Program] = e.Threshold
		}
		r.tables[t.Category] = tb
	}
	return r, nil
}

// MustNew is New for compiled-in tables; it panics on a malformed table.
func MustNew(tables ...Table) *Registry {
	r, err := New(tables...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the threshold for program under category. A miss is a
// configuration defect and is reported as ErrCutoffNotFound, never as zero.
func (r *Registry) Lookup(category Category, program string) (float64, error) {
	t, ok := r.tables[category]
	if !ok {
		return 0, fmt.Errorf("%w: category %q", ErrCutoffNotFound, category.String())
	}
	v, ok := t.thresholds[program]
	if !ok {
		return 0, fmt.Errorf("%w: %q under %s", ErrCutoffNotFound, program, category.Label())
	}
	return v, nil
}

// Has reports whether program exists under category.
func (r *Registry) Has(category Category, program string) bool {
	_, err := r.Lookup(category, program)
	return err == nil
}

// Programs returns program names under category in table order.
func (r *Registry) Programs(category Category) []string {
	t, ok := r.tables[category]
	if !ok {
		return nil
	}
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Entries returns the ordered entries under category.
func (r *Registry) Entries(category Category) []Entry {
	t, ok := r.tables[category]
	if !ok {
		return nil
	}
	out := make([]Entry, 0, len(t.order))
	for _, p := range t.order {
		out = append(out, Entry{Program: p, Threshold: t.thresholds[p]})
	}
	return out
}

// Lowest returns the entry with the smallest threshold under category. Ties
// resolve to the earliest entry.
func (r *Registry) Lowest(category Category) (Entry, bool) {
	entries := r.Entries(category)
	if len(entries) == 0 {
		return Entry{}, false
	}
	lowest := entries[0]
	for _, e := range entries[1:] {
		if e.Threshold < lowest.Threshold {
			lowest = e
		}
	}
	return lowest, true
}
