// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"weighttracker/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu      sync.Mutex
	users   []*domain.User
	records []domain.WeightRecord
	apiLogs []domain.APILog

	userIDCounter   int64
	recordIDCounter int64
	logIDCounter    int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.WeightRecordRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.APILogRepository = (*DB)(nil)
var _ domain.Pinger = (*DB)(nil)

// Ping always succeeds.
func (db *DB) Ping(ctx context.Context) error {
	return ctx.Err()
}

// --- UserRepository ---

// GetUser retrieves a user by ID.
func (db *DB) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// GetUserByEmail retrieves a user by email.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// CreateUser creates a new user.
func (db *DB) CreateUser(ctx context.Context, email, name string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	now := time.Now().UTC()
	u := &domain.User{
		ID:        db.userIDCounter,
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	db.users = append(db.users, u)
	cp := *u
	return &cp, nil
}

// DeleteUser removes a user together with all of its weight records.
func (db *DB) DeleteUser(ctx context.Context, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	idx := -1
	for i, u := range db.users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}
	db.users = append(db.users[:idx], db.users[idx+1:]...)

	kept := db.records[:0]
	for _, r := range db.records {
		if r.UserID != id {
			kept = append(kept, r)
		}
	}
	db.records = kept
	return true, nil
}

// --- WeightRecordRepository ---

// ListWeightRecords returns one page of matching records.
func (db *DB) ListWeightRecords(ctx context.Context, f domain.WeightRecordFilter, limit, offset int) ([]domain.WeightRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := db.filtered(f)
	if offset >= len(result) {
		return []domain.WeightRecord{}, nil
	}
	result = result[offset:]
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// CountWeightRecords counts matching records.
func (db *DB) CountWeightRecords(ctx context.Context, f domain.WeightRecordFilter) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.filtered(f)), nil
}

// GetWeightRecord retrieves a record by ID.
func (db *DB) GetWeightRecord(ctx context.Context, id int64) (*domain.WeightRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if i := db.indexOf(id); i >= 0 {
		r := cloneRecord(db.records[i])
		return &r, nil
	}
	return nil, nil
}

// ListWeightRecordsByUser returns all records of a user.
func (db *DB) ListWeightRecordsByUser(ctx context.Context, userID int64) ([]domain.WeightRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.filtered(domain.WeightRecordFilter{UserID: &userID}), nil
}

// CreateWeightRecord inserts a record. The user must exist.
func (db *DB) CreateWeightRecord(ctx context.Context, r domain.NewWeightRecord) (*domain.WeightRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !db.userExists(r.UserID) {
		return nil, &domain.NotFoundError{Resource: "user"}
	}
	weight, err := normalizeWeight(r.Weight)
	if err != nil {
		return nil, err
	}

	db.recordIDCounter++
	rec := domain.WeightRecord{
		ID:         db.recordIDCounter,
		UserID:     r.UserID,
		Weight:     weight,
		Unit:       r.Unit,
		Notes:      copyString(r.Notes),
		RecordedAt: r.RecordedAt.UTC(),
		CreatedAt:  r.CreatedAt.UTC(),
		UpdatedAt:  r.CreatedAt.UTC(),
	}
	db.records = append(db.records, rec)
	out := cloneRecord(rec)
	return &out, nil
}

// UpdateWeightRecord applies a sparse patch; nil means no such record.
func (db *DB) UpdateWeightRecord(ctx context.Context, id int64, p domain.WeightRecordPatch, updatedAt time.Time) (*domain.WeightRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := db.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	rec := db.records[i]
	if p.Weight != nil {
		w, err := normalizeWeight(*p.Weight)
		if err != nil {
			return nil, err
		}
		rec.Weight = w
	}
	if p.Unit != nil {
		rec.Unit = *p.Unit
	}
	if p.NotesSet {
		rec.Notes = copyString(p.Notes)
	}
	if p.RecordedAt != nil {
		rec.RecordedAt = p.RecordedAt.UTC()
	}
	rec.UpdatedAt = updatedAt.UTC()
	db.records[i] = rec

	out := cloneRecord(rec)
	return &out, nil
}

// DeleteWeightRecord removes a record by ID.
func (db *DB) DeleteWeightRecord(ctx context.Context, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := db.indexOf(id)
	if i < 0 {
		return false, nil
	}
	db.records = append(db.records[:i], db.records[i+1:]...)
	return true, nil
}

// --- APILogRepository ---

// AddAPILog appends an audit entry.
func (db *DB) AddAPILog(ctx context.Context, l domain.APILog) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.logIDCounter++
	l.ID = db.logIDCounter
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	db.apiLogs = append(db.apiLogs, l)
	return l.ID, nil
}

// ListAPILogs lists the newest audit entries.
func (db *DB) ListAPILogs(ctx context.Context, limit int) ([]domain.APILog, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.APILog, len(db.apiLogs))
	copy(result, db.apiLogs)
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// filtered returns sorted copies; callers must hold mu.
func (db *DB) filtered(f domain.WeightRecordFilter) []domain.WeightRecord {
	result := make([]domain.WeightRecord, 0, len(db.records))
	for _, r := range db.records {
		if f.UserID != nil && r.UserID != *f.UserID {
			continue
		}
		result = append(result, cloneRecord(r))
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].RecordedAt.Equal(result[j].RecordedAt) {
			return result[i].RecordedAt.After(result[j].RecordedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func (db *DB) indexOf(id int64) int {
	for i, r := range db.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (db *DB) userExists(id int64) bool {
	for _, u := range db.users {
		if u.ID == id {
			return true
		}
	}
	return false
}

func cloneRecord(r domain.WeightRecord) domain.WeightRecord {
	r.Notes = copyString(r.Notes)
	return r
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
