// internal/app/features/dashboard/routes.go
package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Routes wires the dashboard feature under whatever mount point
// the top-level router chooses (normally "/").
//
// The JSON summary is the only cross-origin resource; allowedOrigins
// applies to it alone.
func Routes(h *Handler, allowedOrigins []string) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeDashboard)
	r.Get("/members.csv", h.ServeMembersCSV)

	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept"},
			MaxAge:         300,
		}))
		r.Get("/summary.json", h.ServeSummaryJSON)
		// Preflight is answered by the cors middleware.
		r.Options("/summary.json", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})

	return r
}
