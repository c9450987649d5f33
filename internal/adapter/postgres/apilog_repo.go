package postgres

import (
	"context"
	"database/sql"

	"weighttracker/internal/domain"
)

// AddAPILog appends an audit entry.
func (d *DB) AddAPILog(ctx context.Context, l domain.APILog) (int64, error) {
	var status sql.NullInt64
	if l.StatusCode != nil {
		status = sql.NullInt64{Int64: int64(*l.StatusCode), Valid: true}
	}
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO api_logs (endpoint, method, status_code, request_body, response_body, error_message, created_at) "+
			"VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id;",
		l.Endpoint, l.Method, status, nullString(l.RequestBody), nullString(l.ResponseBody), nullString(l.ErrorMessage), l.CreatedAt.UTC(),
	).Scan(&id)
	return id, err
}

// ListAPILogs returns the newest audit entries up to limit.
func (d *DB) ListAPILogs(ctx context.Context, limit int) ([]domain.APILog, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, endpoint, method, status_code, request_body, response_body, error_message, created_at "+
			"FROM api_logs ORDER BY created_at DESC, id DESC LIMIT $1;", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.APILog, 0, limit)
	for rows.Next() {
		var (
			l                   domain.APILog
			status              sql.NullInt64
			req, resp, errorMsg sql.NullString
		)
		if err := rows.Scan(&l.ID, &l.Endpoint, &l.Method, &status, &req, &resp, &errorMsg, &l.CreatedAt); err != nil {
			return nil, err
		}
		if status.Valid {
			code := int(status.Int64)
			l.StatusCode = &code
		}
		l.RequestBody = fromNull(req)
		l.ResponseBody = fromNull(resp)
		l.ErrorMessage = fromNull(errorMsg)
		out = append(out, l)
	}
	return out, rows.Err()
}

func fromNull(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
