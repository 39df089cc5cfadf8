// internal/app/features/dashboard/dashboard.go
package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/clubdash/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeDashboard renders the membership dashboard.
//
// Fetch failures and empty reports are not HTTP errors here: the page
// renders with a notice and nothing else.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	q := ParseQuery(r)
	view, err := h.load(r.Context(), q)
	if err != nil {
		h.Log.Warn("dashboard rendered without data", zap.Error(err))
	}

	data := pageData{
		BaseVM: viewdata.NewBaseVM(r, "Socios", "/"),
		View:   view,
	}

	h.Log.Debug("dashboard served",
		zap.Int("records", view.RecordCount),
		zap.Int("filtered", view.Summary.Total),
		zap.Strings("categories", q.Categories))

	templates.Render(w, r, "dashboard_view", data)
}

// ServeSummaryJSON handles GET /summary.json and returns the same view the
// HTML page is built from. A failed fetch answers 502 with the notice.
func (h *Handler) ServeSummaryJSON(w http.ResponseWriter, r *http.Request) {
	view, err := h.load(r.Context(), ParseQuery(r))

	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		h.Log.Warn("summary without data", zap.Error(err))
		w.WriteHeader(http.StatusBadGateway)
	}
	if encErr := json.NewEncoder(w).Encode(view); encErr != nil {
		h.Log.Debug("write summary failed", zap.Error(encErr))
	}
}
