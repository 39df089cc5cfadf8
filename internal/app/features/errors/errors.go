// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/clubdash/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// pageData is the basic view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Message string
}

// Handler is the errors feature handler.
// It just renders templates.
type Handler struct {
	Log *zap.Logger
}

// NewHandler constructs an errors Handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// NotFound renders a friendly "page not found" page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Log.Debug("route not found", zap.String("path", r.URL.Path))
	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "error_not_found", pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Página no encontrada", "/"),
		Message: "La página que buscás no existe.",
	})
}

// MethodNotAllowed answers requests the dashboard does not accept.
// Every page is read-only.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET")
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
