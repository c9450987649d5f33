package adapthttp

import (
	"net/http"

	"weighttracker/internal/domain"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	h := s.health.Check(r.Context())
	if !h.Healthy {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":    "unhealthy",
			"timestamp": domain.FormatTime(h.Timestamp),
			"database":  "disconnected",
			"error":     h.Err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": domain.FormatTime(h.Timestamp),
		"database":  "connected",
	})
}
