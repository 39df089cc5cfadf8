// internal/app/system/membership/summary.go
package membership

import (
	"sort"
	"strconv"
)

// Summary holds the scalar metrics for a (possibly filtered) table.
type Summary struct {
	Total   int `json:"total"`
	Debtors int `json:"debtors"`
	Active  int `json:"active"`

	// DebtRate and CollectionRate are percentages. Both are zero and
	// HasRates is false when Total is zero.
	DebtRate       float64 `json:"debt_rate"`
	CollectionRate float64 `json:"collection_rate"`
	HasRates       bool    `json:"has_rates"`
}

// Summarize computes the metrics over the receiver's rows.
func (t Table) Summarize() Summary {
	s := Summary{Total: len(t.rows)}
	for _, r := range t.rows {
		if r.HasDebt {
			s.Debtors++
		}
		if r.Active {
			s.Active++
		}
	}
	if s.Total > 0 {
		s.DebtRate = float64(s.Debtors) / float64(s.Total) * 100
		s.CollectionRate = 100 - s.DebtRate
		s.HasRates = true
	}
	return s
}

// Count is one slice of a chart aggregation.
type Count struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// CategoryCounts aggregates rows per categoriasocio for the pie chart,
// largest first and then by label.
func (t Table) CategoryCounts() []Count {
	return countBy(t, func(i int) string { return t.rows[i].Category })
}

// DebtCounts aggregates the value counts of tieneDeuda for the bar chart.
// Only values that occur are returned, largest first.
func (t Table) DebtCounts() []Count {
	return countBy(t, func(i int) string { return strconv.FormatBool(t.rows[i].HasDebt) })
}

func countBy(t Table, key func(i int) string) []Count {
	idx := make(map[string]int)
	var out []Count
	for i := range t.rows {
		k := key(i)
		if j, ok := idx[k]; ok {
			out[j].Value++
			continue
		}
		idx[k] = len(out)
		out = append(out, Count{Label: k, Value: 1})
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Value != out[b].Value {
			return out[a].Value > out[b].Value
		}
		return out[a].Label < out[b].Label
	})
	return out
}
