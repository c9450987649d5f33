package adapthttp

import (
	"net/http"

	"weighttracker/internal/app"
	"weighttracker/internal/domain"
)

type webhookRequest struct {
	Event string         `json:"event" validate:"required"`
	Data  map[string]any `json:"data" validate:"required"`
}

type syncRequest struct {
	UserID *int64         `json:"userId" validate:"required"`
	Action string         `json:"action" validate:"required,oneof=create update delete"`
	Data   map[string]any `json:"data" validate:"required"`
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body webhookRequest
	if err := decodeJSON(r, &body); err != nil {
		writeFailure(w, http.StatusBadRequest, err)
		return
	}
	if err := s.checkStruct(body); err != nil {
		writeFailure(w, http.StatusBadRequest, err)
		return
	}
	if err := s.external.ReceiveWebhook(r.Context(), app.WebhookEvent{Event: body.Event, Data: body.Data}); err != nil {
		writeFailure(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Webhook received",
		"event":   body.Event,
	})
}

func (s *Server) handleFetchData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	data, err := s.external.FetchData(r.Context())
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body syncRequest
	if err := decodeJSON(r, &body); err != nil {
		writeFailure(w, http.StatusBadRequest, err)
		return
	}
	if err := s.checkStruct(body); err != nil {
		writeFailure(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.external.Sync(r.Context(), domain.SyncMessage{UserID: *body.UserID, Action: body.Action, Data: body.Data})
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Data synced successfully",
		"result":  res,
	})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	logs, err := s.external.RecentLogs(r.Context(), app.DefaultLogLimit)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "logs": logs})
}
