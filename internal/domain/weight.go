package domain

import (
	"context"
	"regexp"
	"time"
)

// Supported units.
const (
	UnitKg  = "kg"
	UnitLbs = "lbs"
)

var weightPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// WeightRecord represents a single weight measurement. Weight is kept as the
// exact decimal text stored in the database, never as a float.
type WeightRecord struct {
	ID         int64
	UserID     int64
	Weight     string
	Unit       string
	Notes      *string
	RecordedAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewWeightRecord holds the values for an insert, after defaults are applied.
type NewWeightRecord struct {
	UserID     int64
	Weight     string
	Unit       string
	Notes      *string
	RecordedAt time.Time
	CreatedAt  time.Time
}

// WeightRecordPatch is a sparse update. Nil fields are left untouched; Notes
// is applied only when NotesSet is true, so a nil Notes clears the column.
type WeightRecordPatch struct {
	Weight     *string
	Unit       *string
	Notes      *string
	NotesSet   bool
	RecordedAt *time.Time
}

// WeightRecordFilter narrows a listing. A nil UserID matches all users.
type WeightRecordFilter struct {
	UserID *int64
}

// WeightRecordRepository is the port for weight record persistence.
// Listings are ordered by recorded_at descending, then id ascending.
type WeightRecordRepository interface {
	ListWeightRecords(ctx context.Context, f WeightRecordFilter, limit, offset int) ([]WeightRecord, error)
	CountWeightRecords(ctx context.Context, f WeightRecordFilter) (int, error)
	GetWeightRecord(ctx context.Context, id int64) (*WeightRecord, error)
	ListWeightRecordsByUser(ctx context.Context, userID int64) ([]WeightRecord, error)
	CreateWeightRecord(ctx context.Context, r NewWeightRecord) (*WeightRecord, error)
	// UpdateWeightRecord applies p in a single statement and returns nil when
	// no row has the given id.
	UpdateWeightRecord(ctx context.Context, id int64, p WeightRecordPatch, updatedAt time.Time) (*WeightRecord, error)
	DeleteWeightRecord(ctx context.Context, id int64) (bool, error)
}

// ValidateWeight checks the decimal text of a weight: digits with an optional
// fractional part of one or two digits.
func ValidateWeight(w string) error {
	if !weightPattern.MatchString(w) {
		return &ValidationError{Field: "weight", Message: "Weight must be a valid number with up to 2 decimal places"}
	}
	return nil
}

// ValidateUnit accepts "kg" or "lbs", case-sensitive.
func ValidateUnit(u string) error {
	if u != UnitKg && u != UnitLbs {
		return &ValidationError{Field: "unit", Message: `Unit must be either "kg" or "lbs"`}
	}
	return nil
}
