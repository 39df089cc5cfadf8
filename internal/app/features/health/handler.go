package health

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	ClubID string
	Log    *zap.Logger
}

// NewHandler constructs a health Handler for the configured club.
func NewHandler(clubID string, logger *zap.Logger) *Handler {
	return &Handler{
		ClubID: clubID,
		Log:    logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status string `json:"status"`
	Club   string `json:"club"`
}

// Serve handles GET /health.
//
// It reports process liveness only and never calls the reports API, so a
// load balancer health check cannot spend the club's API quota:
//
//	{ "status":"ok", "club":"<club id>" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status: "ok",
		Club:   h.ClubID,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Log.Debug("health-check: write failed", zap.Error(err))
	}
}
