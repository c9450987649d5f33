package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"weighttracker/internal/domain"
)

var (
	_ domain.WeightRecordRepository = (*DB)(nil)
	_ domain.UserRepository         = (*DB)(nil)
	_ domain.APILogRepository       = (*DB)(nil)
	_ domain.Pinger                 = (*DB)(nil)
)

const weightRecordColumns = "id, user_id, weight, unit, notes, recorded_at, created_at, updated_at"

const weightRecordOrder = " ORDER BY recorded_at DESC, id ASC"

func scanWeightRecord(row interface{ Scan(...any) error }) (*domain.WeightRecord, error) {
	var (
		r     domain.WeightRecord
		notes sql.NullString
	)
	if err := row.Scan(&r.ID, &r.UserID, &r.Weight, &r.Unit, &notes, &r.RecordedAt, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	if notes.Valid {
		r.Notes = &notes.String
	}
	r.RecordedAt = r.RecordedAt.UTC()
	r.CreatedAt = r.CreatedAt.UTC()
	r.UpdatedAt = r.UpdatedAt.UTC()
	return &r, nil
}

func (d *DB) queryWeightRecords(ctx context.Context, query string, args ...any) ([]domain.WeightRecord, error) {
	rows, err := d.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.WeightRecord, 0)
	for rows.Next() {
		r, err := scanWeightRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func filterClause(f domain.WeightRecordFilter) (string, []any) {
	if f.UserID == nil {
		return "", nil
	}
	return " WHERE user_id = $1", []any{*f.UserID}
}

// ListWeightRecords returns one page of matching records.
func (d *DB) ListWeightRecords(ctx context.Context, f domain.WeightRecordFilter, limit, offset int) ([]domain.WeightRecord, error) {
	where, args := filterClause(f)
	query := "SELECT " + weightRecordColumns + " FROM weight_records" + where + weightRecordOrder +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d;", len(args)+1, len(args)+2)
	return d.queryWeightRecords(ctx, query, append(args, limit, offset)...)
}

// CountWeightRecords counts matching records.
func (d *DB) CountWeightRecords(ctx context.Context, f domain.WeightRecordFilter) (int, error) {
	where, args := filterClause(f)
	var n int
	err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM weight_records"+where+";", args...).Scan(&n)
	return n, err
}

// GetWeightRecord retrieves a record by ID.
func (d *DB) GetWeightRecord(ctx context.Context, id int64) (*domain.WeightRecord, error) {
	r, err := scanWeightRecord(d.sql.QueryRowContext(ctx,
		"SELECT "+weightRecordColumns+" FROM weight_records WHERE id = $1;", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return r, err
}

// ListWeightRecordsByUser returns all records of a user.
func (d *DB) ListWeightRecordsByUser(ctx context.Context, userID int64) ([]domain.WeightRecord, error) {
	return d.queryWeightRecords(ctx,
		"SELECT "+weightRecordColumns+" FROM weight_records WHERE user_id = $1"+weightRecordOrder+";", userID)
}

// CreateWeightRecord inserts a record.
func (d *DB) CreateWeightRecord(ctx context.Context, n domain.NewWeightRecord) (*domain.WeightRecord, error) {
	r, err := scanWeightRecord(d.sql.QueryRowContext(ctx,
		"INSERT INTO weight_records (user_id, weight, unit, notes, recorded_at, created_at, updated_at) "+
			"VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING "+weightRecordColumns+";",
		n.UserID, n.Weight, n.Unit, nullString(n.Notes), n.RecordedAt.UTC(), n.CreatedAt.UTC(),
	))
	if err != nil {
		return nil, classify(err)
	}
	return r, nil
}

// UpdateWeightRecord applies a sparse patch in one conditional UPDATE. It
// returns nil when no row has the given id.
func (d *DB) UpdateWeightRecord(ctx context.Context, id int64, p domain.WeightRecordPatch, updatedAt time.Time) (*domain.WeightRecord, error) {
	sets := []string{"updated_at = $2"}
	args := []any{id, updatedAt.UTC()}
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Weight != nil {
		set("weight", *p.Weight)
	}
	if p.Unit != nil {
		set("unit", *p.Unit)
	}
	if p.NotesSet {
		set("notes", nullString(p.Notes))
	}
	if p.RecordedAt != nil {
		set("recorded_at", p.RecordedAt.UTC())
	}

	query := "UPDATE weight_records SET " + strings.Join(sets, ", ") +
		" WHERE id = $1 RETURNING " + weightRecordColumns + ";"
	r, err := scanWeightRecord(d.sql.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return r, nil
}

// DeleteWeightRecord removes a record by ID.
func (d *DB) DeleteWeightRecord(ctx context.Context, id int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM weight_records WHERE id = $1;", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
