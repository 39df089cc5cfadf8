// internal/app/features/dashboard/types.go
package dashboard

import (
	"github.com/dalemusser/clubdash/internal/app/system/membership"
	"github.com/dalemusser/clubdash/internal/app/system/paging"
	"github.com/dalemusser/clubdash/internal/app/system/viewdata"
)

// Notice levels, matching the CSS classes used by the template.
const (
	NoticeSuccess = "success"
	NoticeInfo    = "info"
	NoticeWarning = "warning"
	NoticeError   = "error"
)

// Query is the user's view selection, parsed from the request URL.
type Query struct {
	Categories []string // multi-select; empty means no filter
	Start      int      // 1-based detail offset
	Details    bool     // detail table expanded
}

// Notice is an inline message shown above the dashboard.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// MetricTile is one scalar metric.
type MetricTile struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Delta string `json:"delta,omitempty"`
}

// CategoryOption is one entry of the category multi-select.
type CategoryOption struct {
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

// DetailRow is one row of the member detail table.
type DetailRow struct {
	Category string   `json:"categoriasocio"`
	HasDebt  bool     `json:"tieneDeuda"`
	Active   bool     `json:"socio_vigente"`
	Extra    []string `json:"extra,omitempty"`
	Invalid  bool     `json:"invalid,omitempty"`
}

// DetailView is the paged, expandable table of filtered rows.
type DetailView struct {
	Expanded bool          `json:"expanded"`
	Total    int           `json:"total"`
	Columns  []string      `json:"columns"`
	Rows     []DetailRow   `json:"rows"`
	Range    paging.Range  `json:"range"`
	Paging   paging.Result `json:"paging"`

	PrevURL   string `json:"-"`
	NextURL   string `json:"-"`
	ToggleURL string `json:"-"`
}

// View is everything the dashboard shows for one evaluation.
type View struct {
	Notices []Notice `json:"notices"`

	// NoData is set when the fetch failed or returned no records; nothing
	// below the notices is rendered then.
	NoData bool `json:"no_data"`

	RecordCount int                `json:"record_count"`
	Categories  []CategoryOption   `json:"categories,omitempty"`
	Selected    []string           `json:"selected,omitempty"`
	Summary     membership.Summary `json:"summary"`
	Metrics     []MetricTile       `json:"metrics,omitempty"`
	Pie         []membership.Count `json:"pie,omitempty"`
	Bar         []membership.Count `json:"bar,omitempty"`
	Detail      *DetailView        `json:"detail,omitempty"`

	CSVURL string `json:"-"`
}

// pageData is the template model for dashboard_view.
type pageData struct {
	viewdata.BaseVM
	View
}
