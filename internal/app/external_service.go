package app

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"weighttracker/internal/domain"
)

// Endpoints recorded in the audit log.
const (
	WebhookEndpoint = "/api/external/webhook"
	FetchEndpoint   = "https://api.example.com/data"
	SyncEndpoint    = "https://api.example.com/sync"
)

// DefaultLogLimit caps the audit log listing.
const DefaultLogLimit = 50

// WebhookEvent is an inbound webhook payload.
type WebhookEvent struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data"`
}

// SyncResult is the acknowledgement of a sync call.
type SyncResult struct {
	Success  bool   `json:"success"`
	SyncedAt string `json:"syncedAt"`
}

// ExternalData is the payload returned by FetchData.
type ExternalData struct {
	ID        int    `json:"id"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// ExternalService handles calls that cross the system boundary and records
// each one in the API log.
type ExternalService struct {
	logs      domain.APILogRepository
	publisher domain.SyncPublisher
	now       func() time.Time
}

// NewExternalService creates an ExternalService. A nil publisher simulates a
// successful sync.
func NewExternalService(logs domain.APILogRepository, publisher domain.SyncPublisher) *ExternalService {
	return &ExternalService{logs: logs, publisher: publisher, now: time.Now}
}

// ReceiveWebhook records an inbound webhook.
func (s *ExternalService) ReceiveWebhook(ctx context.Context, ev WebhookEvent) error {
	resp := map[string]any{"success": true}
	if err := s.record(ctx, WebhookEndpoint, http.MethodPost, ev, resp, nil); err != nil {
		s.recordFailure(ctx, WebhookEndpoint, http.MethodPost, ev, err)
		return err
	}
	log.Printf("received webhook event=%s", ev.Event)
	return nil
}

// FetchData retrieves data from the upstream API. The upstream is simulated.
func (s *ExternalService) FetchData(ctx context.Context) (*ExternalData, error) {
	data := &ExternalData{
		ID:        1,
		Message:   "This is mock data from external API",
		Timestamp: domain.FormatTime(s.now()),
	}
	if err := s.record(ctx, FetchEndpoint, http.MethodGet, nil, data, nil); err != nil {
		s.recordFailure(ctx, FetchEndpoint, http.MethodGet, nil, err)
		return nil, err
	}
	return data, nil
}

// Sync forwards m to the sync target.
func (s *ExternalService) Sync(ctx context.Context, m domain.SyncMessage) (*SyncResult, error) {
	if s.publisher != nil {
		if err := s.publisher.PublishSync(ctx, m); err != nil {
			s.recordFailure(ctx, SyncEndpoint, http.MethodPost, m, err)
			return nil, err
		}
	}
	res := &SyncResult{Success: true, SyncedAt: domain.FormatTime(s.now())}
	if err := s.record(ctx, SyncEndpoint, http.MethodPost, m, res, nil); err != nil {
		s.recordFailure(ctx, SyncEndpoint, http.MethodPost, m, err)
		return nil, err
	}
	return res, nil
}

// RecentLogs returns the newest audit entries.
func (s *ExternalService) RecentLogs(ctx context.Context, limit int) ([]domain.APILog, error) {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	logs, err := s.logs.ListAPILogs(ctx, limit)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "fetch api logs", Err: err}
	}
	if logs == nil {
		logs = []domain.APILog{}
	}
	return logs, nil
}

func (s *ExternalService) record(ctx context.Context, endpoint, method string, req, resp any, callErr error) error {
	status := http.StatusOK
	entry := domain.APILog{
		Endpoint:     endpoint,
		Method:       method,
		StatusCode:   &status,
		RequestBody:  marshalBody(req),
		ResponseBody: marshalBody(resp),
		CreatedAt:    s.now().UTC(),
	}
	if callErr != nil {
		status = http.StatusInternalServerError
		msg := callErr.Error()
		entry.ErrorMessage = &msg
		entry.ResponseBody = nil
	}
	if _, err := s.logs.AddAPILog(ctx, entry); err != nil {
		return &domain.PersistenceError{Op: "write api log", Err: err}
	}
	return nil
}

// recordFailure writes the 500 entry. A failure to write it is only logged,
// callers see the call error.
func (s *ExternalService) recordFailure(ctx context.Context, endpoint, method string, req any, callErr error) {
	if err := s.record(ctx, endpoint, method, req, nil, callErr); err != nil {
		log.Printf("api log: %s %s: %v", method, endpoint, err)
	}
}

func marshalBody(v any) *string {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}
