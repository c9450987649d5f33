package domain

import (
	"context"
	"time"
)

// APILog is an append-only audit entry for one external-facing call.
type APILog struct {
	ID           int64     `json:"id"`
	Endpoint     string    `json:"endpoint"`
	Method       string    `json:"method"`
	StatusCode   *int      `json:"statusCode"`
	RequestBody  *string   `json:"requestBody"`
	ResponseBody *string   `json:"responseBody"`
	ErrorMessage *string   `json:"errorMessage"`
	CreatedAt    time.Time `json:"createdAt"`
}

// APILogRepository is the port for the audit log. Entries are never updated
// or deleted.
type APILogRepository interface {
	AddAPILog(ctx context.Context, l APILog) (int64, error)
	// ListAPILogs returns up to limit entries, newest first.
	ListAPILogs(ctx context.Context, limit int) ([]APILog, error)
}

// SyncMessage is forwarded to the external sync target.
type SyncMessage struct {
	UserID int64          `json:"userId"`
	Action string         `json:"action"`
	Data   map[string]any `json:"data"`
}

// SyncPublisher delivers sync messages to an external system.
type SyncPublisher interface {
	PublishSync(ctx context.Context, m SyncMessage) error
}
