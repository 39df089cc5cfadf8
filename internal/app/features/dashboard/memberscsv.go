// internal/app/features/dashboard/memberscsv.go
package dashboard

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dalemusser/clubdash/internal/app/system/membership"
	"github.com/dalemusser/clubdash/internal/app/system/ourclub"
	"go.uber.org/zap"
)

// ServeMembersCSV handles GET /members.csv and streams the filtered rows
// table. The report is always fetched as JSON; the CSV is produced here so
// the category filter applies to it.
func (h *Handler) ServeMembersCSV(w http.ResponseWriter, r *http.Request) {
	q := ParseQuery(r)

	env, err := h.Reports.FetchMembershipReport(r.Context())
	if err != nil {
		h.Log.Warn("members CSV fetch failed", zap.Error(err))
		http.Error(w, Describe(err), http.StatusBadGateway)
		return
	}

	rows := membership.FromEnvelope(&env).Filter(q.Categories)
	extra := rows.ExtraColumns()

	filename := fmt.Sprintf("socios_%s_%s.csv", h.ClubID, time.Now().UTC().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))

	// UTF-8 BOM for Excel
	_, _ = w.Write([]byte{0xEF, 0xBB, 0xBF})

	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	defer cw.Flush()

	header := append([]string{ourclub.FieldCategory, ourclub.FieldHasDebt, ourclub.FieldActive}, extra...)
	_ = cw.Write(header)

	for _, rec := range rows.Rows() {
		line := make([]string, 0, len(header))
		line = append(line, rec.Category, strconv.FormatBool(rec.HasDebt), strconv.FormatBool(rec.Active))
		for _, k := range extra {
			line = append(line, rec.ExtraText(k))
		}
		_ = cw.Write(line)
	}

	h.Log.Info("members CSV exported",
		zap.Int("rows", rows.Len()),
		zap.Strings("categories", q.Categories))
}
