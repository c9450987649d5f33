package app

import (
	"context"
	"errors"
	"time"

	"weighttracker/internal/domain"
)

// DefaultListLimit is the page size used when the caller gives none.
const DefaultListLimit = 50

// ListParams selects a page of weight records.
type ListParams struct {
	UserID *int64
	Limit  *int
	Offset *int
}

// Page is one page of weight records plus the total number of matches.
type Page struct {
	Records []domain.WeightRecord
	Total   int
	HasMore bool
}

// CreateInput is the caller-supplied data for a new weight record.
type CreateInput struct {
	UserID     int64
	Weight     string
	Unit       *string
	Notes      *string
	RecordedAt *string
}

// UpdateInput is a sparse update. Only non-nil fields change; Notes is applied
// when NotesSet is true so that an explicit null clears it.
type UpdateInput struct {
	Weight     *string
	Unit       *string
	Notes      *string
	NotesSet   bool
	RecordedAt *string
}

// DeleteResult is returned by Delete instead of the removed record.
type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

var errWeightRecordNotFound = &domain.NotFoundError{Resource: "weight record"}

// WeightService encapsulates weight-record use cases.
type WeightService struct {
	repo domain.WeightRecordRepository
	now  func() time.Time
}

// NewWeightService creates a WeightService backed by the given repository.
func NewWeightService(repo domain.WeightRecordRepository) *WeightService {
	return &WeightService{repo: repo, now: time.Now}
}

// List returns a page of records, newest measurement first, optionally
// restricted to one user.
func (s *WeightService) List(ctx context.Context, p ListParams) (*Page, error) {
	limit, offset := DefaultListLimit, 0
	if p.Limit != nil {
		limit = *p.Limit
	}
	if p.Offset != nil {
		offset = *p.Offset
	}
	if limit < 0 {
		return nil, &domain.ValidationError{Field: "limit", Message: "limit must not be negative"}
	}
	if offset < 0 {
		return nil, &domain.ValidationError{Field: "offset", Message: "offset must not be negative"}
	}

	f := domain.WeightRecordFilter{UserID: p.UserID}
	records, err := s.repo.ListWeightRecords(ctx, f, limit, offset)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "fetch weight records", Err: err}
	}
	total, err := s.repo.CountWeightRecords(ctx, f)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "fetch weight records", Err: err}
	}
	if records == nil {
		records = []domain.WeightRecord{}
	}
	return &Page{Records: records, Total: total, HasMore: offset+limit < total}, nil
}

// Get returns the record with the given id, or nil when there is none.
func (s *WeightService) Get(ctx context.Context, id int64) (*domain.WeightRecord, error) {
	rec, err := s.repo.GetWeightRecord(ctx, id)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "fetch weight record", Err: err}
	}
	return rec, nil
}

// ListByUser returns every record of a user, newest measurement first. It is
// unbounded.
func (s *WeightService) ListByUser(ctx context.Context, userID int64) ([]domain.WeightRecord, error) {
	records, err := s.repo.ListWeightRecordsByUser(ctx, userID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "fetch user weight records", Err: err}
	}
	if records == nil {
		records = []domain.WeightRecord{}
	}
	return records, nil
}

// Create validates in and inserts one record. Unit defaults to kg and
// recordedAt to the current time.
func (s *WeightService) Create(ctx context.Context, in CreateInput) (*domain.WeightRecord, error) {
	if err := domain.ValidateWeight(in.Weight); err != nil {
		return nil, err
	}
	unit := domain.UnitKg
	if in.Unit != nil && *in.Unit != "" {
		if err := domain.ValidateUnit(*in.Unit); err != nil {
			return nil, err
		}
		unit = *in.Unit
	}
	now := s.now().UTC()
	recordedAt := now
	if in.RecordedAt != nil && *in.RecordedAt != "" {
		t, err := domain.ParseTimestamp("recordedAt", *in.RecordedAt)
		if err != nil {
			return nil, err
		}
		recordedAt = t
	}
	var notes *string
	if in.Notes != nil && *in.Notes != "" {
		notes = in.Notes
	}

	rec, err := s.repo.CreateWeightRecord(ctx, domain.NewWeightRecord{
		UserID:     in.UserID,
		Weight:     in.Weight,
		Unit:       unit,
		Notes:      notes,
		RecordedAt: recordedAt,
		CreatedAt:  now,
	})
	if err != nil {
		return nil, persistOrDomain("create weight record", err)
	}
	return rec, nil
}

// Update applies a sparse patch to an existing record and always refreshes
// updatedAt. Invalid input on a missing id reports not-found.
func (s *WeightService) Update(ctx context.Context, id int64, in UpdateInput) (*domain.WeightRecord, error) {
	patch, err := buildPatch(in)
	if err != nil {
		existing, lerr := s.repo.GetWeightRecord(ctx, id)
		if lerr != nil {
			return nil, &domain.PersistenceError{Op: "update weight record", Err: lerr}
		}
		if existing == nil {
			return nil, errWeightRecordNotFound
		}
		return nil, err
	}

	rec, err := s.repo.UpdateWeightRecord(ctx, id, patch, s.now().UTC())
	if err != nil {
		return nil, persistOrDomain("update weight record", err)
	}
	if rec == nil {
		return nil, errWeightRecordNotFound
	}
	return rec, nil
}

// Delete permanently removes a record.
func (s *WeightService) Delete(ctx context.Context, id int64) (*DeleteResult, error) {
	deleted, err := s.repo.DeleteWeightRecord(ctx, id)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "delete weight record", Err: err}
	}
	if !deleted {
		return nil, errWeightRecordNotFound
	}
	return &DeleteResult{Success: true, Message: "Weight record deleted successfully"}, nil
}

func buildPatch(in UpdateInput) (domain.WeightRecordPatch, error) {
	p := domain.WeightRecordPatch{Notes: in.Notes, NotesSet: in.NotesSet}
	if in.Weight != nil {
		if err := domain.ValidateWeight(*in.Weight); err != nil {
			return p, err
		}
		p.Weight = in.Weight
	}
	if in.Unit != nil {
		if err := domain.ValidateUnit(*in.Unit); err != nil {
			return p, err
		}
		p.Unit = in.Unit
	}
	if in.RecordedAt != nil {
		t, err := domain.ParseTimestamp("recordedAt", *in.RecordedAt)
		if err != nil {
			return p, err
		}
		p.RecordedAt = &t
	}
	return p, nil
}

// persistOrDomain passes through errors the storage adapter already
// classified and wraps everything else.
func persistOrDomain(op string, err error) error {
	var ve *domain.ValidationError
	var nf *domain.NotFoundError
	if errors.As(err, &ve) || errors.As(err, &nf) {
		return err
	}
	return &domain.PersistenceError{Op: op, Err: err}
}
