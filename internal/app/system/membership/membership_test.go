package membership_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/dalemusser/clubdash/internal/app/system/membership"
	"github.com/dalemusser/clubdash/internal/app/system/ourclub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(cat string, debt, active bool) ourclub.Record {
	return ourclub.Record{Category: cat, HasDebt: debt, Active: active}
}

func sampleTable() membership.Table {
	return membership.NewTable([]ourclub.Record{
		rec("Activo", true, true),
		rec("Activo", false, true),
		rec("Cadete", true, false),
		rec("Vitalicio", false, true),
		rec("Activo", false, false),
	})
}

func TestCategories_FromFullTable(t *testing.T) {
	tbl := sampleTable()
	assert.Equal(t, []string{"Activo", "Cadete", "Vitalicio"}, tbl.Categories())

	// Filtering does not change what the full table offers.
	_ = tbl.Filter([]string{"Cadete"})
	assert.Equal(t, []string{"Activo", "Cadete", "Vitalicio"}, tbl.Categories())
}

func TestFilter_NonEmptySelection(t *testing.T) {
	tbl := sampleTable()
	selected := []string{"Cadete", "Vitalicio"}

	got := tbl.Filter(selected)
	require.Equal(t, 2, got.Len())
	for _, r := range got.Rows() {
		assert.Contains(t, selected, r.Category)
	}
	assert.Equal(t, 5, tbl.Len(), "receiver must not change")
}

func TestFilter_EmptySelectionKeepsAll(t *testing.T) {
	tbl := sampleTable()
	assert.Equal(t, tbl.Rows(), tbl.Filter(nil).Rows())
	assert.Equal(t, tbl.Rows(), tbl.Filter([]string{}).Rows())
}

func TestFilter_UnknownCategoryYieldsEmpty(t *testing.T) {
	got := sampleTable().Filter([]string{"Honorario"})
	assert.True(t, got.Empty())
}

func TestSummarize(t *testing.T) {
	s := sampleTable().Summarize()

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 2, s.Debtors)
	assert.Equal(t, 3, s.Active)
	assert.True(t, s.HasRates)
	assert.InDelta(t, 40.0, s.DebtRate, 1e-9)
	assert.InDelta(t, 60.0, s.CollectionRate, 1e-9)
}

func TestSummarize_FilteredTable(t *testing.T) {
	s := sampleTable().Filter([]string{"Activo"}).Summarize()

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Debtors)
	assert.Equal(t, 2, s.Active)
}

func TestSummarize_EmptyTableHasNoRates(t *testing.T) {
	s := membership.NewTable(nil).Summarize()

	assert.Equal(t, 0, s.Total)
	assert.False(t, s.HasRates)
	assert.Equal(t, 0.0, s.DebtRate)
	assert.Equal(t, 0.0, s.CollectionRate)
	assert.False(t, math.IsNaN(s.DebtRate))
}

func TestSummarize_Partitions(t *testing.T) {
	tables := []membership.Table{
		sampleTable(),
		sampleTable().Filter([]string{"Cadete"}),
		membership.NewTable([]ourclub.Record{rec("A", true, true)}),
		membership.NewTable([]ourclub.Record{rec("A", false, false), rec("B", false, false), rec("C", true, false)}),
	}
	for _, tbl := range tables {
		s := tbl.Summarize()
		assert.Equal(t, s.Total, s.Debtors+(s.Total-s.Debtors))
		assert.Equal(t, tbl.Len(), s.Total)
		if s.Total > 0 {
			assert.InDelta(t, 100.0, s.DebtRate+s.CollectionRate, 1e-9)
		}
	}
}

func TestCategoryCounts(t *testing.T) {
	got := sampleTable().CategoryCounts()
	assert.Equal(t, []membership.Count{
		{Label: "Activo", Value: 3},
		{Label: "Cadete", Value: 1},
		{Label: "Vitalicio", Value: 1},
	}, got)
}

func TestDebtCounts(t *testing.T) {
	assert.Equal(t, []membership.Count{
		{Label: "false", Value: 3},
		{Label: "true", Value: 2},
	}, sampleTable().DebtCounts())

	assert.Equal(t, []membership.Count{
		{Label: "true", Value: 1},
	}, sampleTable().Filter([]string{"Cadete"}).DebtCounts())

	assert.Empty(t, membership.NewTable(nil).DebtCounts())
}

func TestPage(t *testing.T) {
	tbl := sampleTable()

	assert.Len(t, tbl.Page(1, 2), 2)
	assert.Len(t, tbl.Page(5, 2), 1)
	assert.Empty(t, tbl.Page(6, 2))
	assert.Len(t, tbl.Page(0, 10), 5)
	assert.Empty(t, tbl.Page(1, 0))
	assert.Equal(t, "Cadete", tbl.Page(3, 1)[0].Category)
}

func TestFromEnvelope(t *testing.T) {
	assert.True(t, membership.FromEnvelope(nil).Empty())

	env := &ourclub.Envelope{Items: []ourclub.Record{
		rec("A", false, true),
		{Category: "B", Invalid: []string{"missing tieneDeuda"}},
	}}
	tbl := membership.FromEnvelope(env)
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, 1, tbl.InvalidCount())
}

func TestExtraColumns(t *testing.T) {
	a := rec("A", false, true)
	a.Extra = map[string]json.RawMessage{"nombre": json.RawMessage(`"Ana"`)}
	b := rec("B", true, true)
	b.Extra = map[string]json.RawMessage{"dni": json.RawMessage(`"1"`), "nombre": json.RawMessage(`"Luis"`)}

	tbl := membership.NewTable([]ourclub.Record{a, b, rec("C", false, false)})
	assert.Equal(t, []string{"dni", "nombre"}, tbl.ExtraColumns())
	assert.Empty(t, membership.NewTable(nil).ExtraColumns())
}
