// internal/app/features/dashboard/view.go
package dashboard

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dalemusser/clubdash/internal/app/system/htmlsanitize"
	"github.com/dalemusser/clubdash/internal/app/system/membership"
	"github.com/dalemusser/clubdash/internal/app/system/ourclub"
	"github.com/dalemusser/clubdash/internal/app/system/paging"
	"github.com/dalemusser/waffle/pantry/query"
)

const (
	msgNoRecords  = "No se encontraron registros con los filtros aplicados."
	msgNoMatches  = "Ningún socio coincide con las categorías seleccionadas."
	msgConnected  = "¡Conexión exitosa! Se encontraron %d socios."
	msgInvalidRec = "%d registros no traen categoriasocio, tieneDeuda o socio_vigente válidos y se cuentan con valores vacíos."
)

// ParseQuery reads the view selection from r.
//
// Categories come from repeated "category" parameters and must match the
// report byte for byte, so values are not trimmed. An empty value selects
// records without a category; only an absent parameter means no filter.
// Duplicates are dropped, order is kept.
func ParseQuery(r *http.Request) Query {
	q := Query{
		Start:   paging.ParseStart(r),
		Details: query.Get(r, "details") == "1",
	}
	seen := make(map[string]struct{})
	for _, c := range r.URL.Query()["category"] {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		q.Categories = append(q.Categories, c)
	}
	return q
}

// Describe turns a fetch error into the message shown to the user.
// Server errors keep their status code and the text of the body.
func Describe(err error) string {
	var se *ourclub.ServerError
	if errors.As(err, &se) {
		return fmt.Sprintf("Error %d: %s", se.Status, htmlsanitize.PlainText(se.Body))
	}
	var ce *ourclub.ConnectionError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	return (&ourclub.ConnectionError{Message: err.Error()}).Error()
}

// BuildView computes the dashboard for one evaluation. It does no I/O.
//
// env is nil when the fetch failed, in which case fetchErr explains why.
// All metrics, charts and the detail table are computed over the table
// after the category filter is applied.
func BuildView(env *ourclub.Envelope, fetchErr error, q Query, pageSize int) View {
	if fetchErr != nil {
		return View{
			NoData:  true,
			Notices: []Notice{{Level: NoticeError, Message: Describe(fetchErr)}},
		}
	}

	full := membership.FromEnvelope(env)
	if full.Empty() {
		return View{
			NoData:  true,
			Notices: []Notice{{Level: NoticeWarning, Message: msgNoRecords}},
		}
	}

	v := View{
		RecordCount: full.Len(),
		Selected:    q.Categories,
		Notices:     []Notice{{Level: NoticeSuccess, Message: fmt.Sprintf(msgConnected, full.Len())}},
	}
	if n := full.InvalidCount(); n > 0 {
		v.Notices = append(v.Notices, Notice{Level: NoticeWarning, Message: fmt.Sprintf(msgInvalidRec, n)})
	}

	selected := make(map[string]bool, len(q.Categories))
	for _, c := range q.Categories {
		selected[c] = true
	}
	for _, c := range full.Categories() {
		v.Categories = append(v.Categories, CategoryOption{Name: c, Selected: selected[c]})
	}

	filtered := full.Filter(q.Categories)
	if filtered.Empty() {
		v.Notices = append(v.Notices, Notice{Level: NoticeInfo, Message: msgNoMatches})
	}

	v.Summary = filtered.Summarize()
	v.Metrics = metricTiles(v.Summary)
	v.Pie = filtered.CategoryCounts()
	v.Bar = filtered.DebtCounts()
	v.Detail = buildDetail(filtered, q, pageSize)
	v.CSVURL = "/members.csv" + encode(q.Categories, nil)
	return v
}

func metricTiles(s membership.Summary) []MetricTile {
	debtors := MetricTile{Label: "Con Deuda", Value: strconv.Itoa(s.Debtors)}
	if s.HasRates {
		debtors.Delta = formatPercent(s.DebtRate)
	}
	tiles := []MetricTile{
		{Label: "Total Socios", Value: strconv.Itoa(s.Total)},
		debtors,
		{Label: "Socios Vigentes", Value: strconv.Itoa(s.Active)},
	}
	if s.HasRates {
		tiles = append(tiles, MetricTile{Label: "Tasa de Cobranza", Value: formatPercent(s.CollectionRate)})
	}
	return tiles
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

func buildDetail(t membership.Table, q Query, pageSize int) *DetailView {
	if pageSize <= 0 {
		pageSize = paging.PageSize
	}
	start := paging.ClampStart(q.Start, t.Len(), pageSize)
	cols := t.ExtraColumns()

	d := &DetailView{
		Expanded: q.Details,
		Total:    t.Len(),
		Columns:  cols,
	}
	for _, rec := range t.Page(start, pageSize) {
		row := DetailRow{
			Category: rec.Category,
			HasDebt:  rec.HasDebt,
			Active:   rec.Active,
			Invalid:  !rec.Valid(),
		}
		for _, c := range cols {
			row.Extra = append(row.Extra, rec.ExtraText(c))
		}
		d.Rows = append(d.Rows, row)
	}

	d.Range = paging.ComputeRange(start, len(d.Rows), pageSize)
	d.Paging = paging.Indicators(start, len(d.Rows), t.Len())

	details := map[string]string{"details": "1"}
	if d.Paging.HasPrev {
		d.PrevURL = "/" + encode(q.Categories, with(details, "start", d.Range.PrevStart))
	}
	if d.Paging.HasNext {
		d.NextURL = "/" + encode(q.Categories, with(details, "start", d.Range.NextStart))
	}
	if q.Details {
		d.ToggleURL = "/" + encode(q.Categories, nil)
	} else {
		d.ToggleURL = "/" + encode(q.Categories, details)
	}
	return d
}

func with(base map[string]string, key string, n int) map[string]string {
	out := make(map[string]string, len(base)+1)
	for k, v := range base {
		out[k] = v
	}
	out[key] = strconv.Itoa(n)
	return out
}

// encode builds a query string carrying the category selection plus extra.
func encode(categories []string, extra map[string]string) string {
	vals := url.Values{}
	for _, c := range categories {
		vals.Add("category", c)
	}
	for k, v := range extra {
		vals.Set(k, v)
	}
	if len(vals) == 0 {
		return ""
	}
	return "?" + vals.Encode()
}
