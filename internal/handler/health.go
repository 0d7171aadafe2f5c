package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/smr-site/reviews-api/internal/api"
)

// Health handles GET /health. Returns ok when the database answers a ping
// within a short deadline.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		api.WriteError(w, http.StatusServiceUnavailable, "db_unavailable")
		return
	}

	api.WriteJSON(w, api.StatusResponse{OK: true})
}
