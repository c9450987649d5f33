package app

import (
	"context"
	"time"

	"weighttracker/internal/domain"
)

// Health is the outcome of a liveness check.
type Health struct {
	Healthy   bool
	Timestamp time.Time
	Err       error
}

// HealthService checks the round trip to the store.
type HealthService struct {
	db domain.Pinger
}

// NewHealthService creates a HealthService for the given store.
func NewHealthService(db domain.Pinger) *HealthService {
	return &HealthService{db: db}
}

// Check pings the store. A failure is reported in the result, never returned
// as an error.
func (s *HealthService) Check(ctx context.Context) Health {
	err := s.db.Ping(ctx)
	return Health{Healthy: err == nil, Timestamp: time.Now().UTC(), Err: err}
}
