// internal/app/system/membership/table.go
package membership

import (
	"sort"

	"github.com/dalemusser/clubdash/internal/app/system/ourclub"
)

// Table is the in-memory rows table built from one report fetch.
// Filtering returns a new Table; a Table is never modified in place.
type Table struct {
	rows []ourclub.Record
}

// NewTable wraps records in a Table. The slice is not copied.
func NewTable(records []ourclub.Record) Table {
	return Table{rows: records}
}

// FromEnvelope flattens a report envelope into a Table.
func FromEnvelope(env *ourclub.Envelope) Table {
	if env == nil {
		return Table{}
	}
	return NewTable(env.Items)
}

// Len returns the row count.
func (t Table) Len() int { return len(t.rows) }

// Empty reports whether the table has no rows.
func (t Table) Empty() bool { return len(t.rows) == 0 }

// Rows returns the rows in report order.
func (t Table) Rows() []ourclub.Record { return t.rows }

// Categories returns the distinct categoriasocio values, sorted.
func (t Table) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range t.rows {
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}
	sort.Strings(out)
	return out
}

// Filter keeps the rows whose category is in selected.
//
// An empty selection applies no filter and returns every row.
func (t Table) Filter(selected []string) Table {
	if len(selected) == 0 {
		return t
	}
	want := make(map[string]struct{}, len(selected))
	for _, c := range selected {
		want[c] = struct{}{}
	}
	out := make([]ourclub.Record, 0, len(t.rows))
	for _, r := range t.rows {
		if _, ok := want[r.Category]; ok {
			out = append(out, r)
		}
	}
	return Table{rows: out}
}

// Page returns up to size rows starting at the 1-based index start.
// Out-of-range starts yield an empty page.
func (t Table) Page(start, size int) []ourclub.Record {
	if start < 1 {
		start = 1
	}
	if size <= 0 || start > len(t.rows) {
		return nil
	}
	end := start - 1 + size
	if end > len(t.rows) {
		end = len(t.rows)
	}
	return t.rows[start-1 : end]
}

// ExtraColumns returns the sorted union of pass-through keys across rows.
func (t Table) ExtraColumns() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range t.rows {
		for k := range r.Extra {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// InvalidCount returns the number of rows tagged during parsing.
func (t Table) InvalidCount() int {
	n := 0
	for _, r := range t.rows {
		if !r.Valid() {
			n++
		}
	}
	return n
}
