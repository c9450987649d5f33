package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"weighttracker/internal/domain"
)

const userColumns = "id, email, name, created_at, updated_at"

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUser retrieves a user by ID.
func (d *DB) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1;", id))
}

// GetUserByEmail retrieves a user by email.
func (d *DB) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1;", email))
}

// CreateUser creates a new user.
func (d *DB) CreateUser(ctx context.Context, email, name string) (*domain.User, error) {
	now := time.Now().UTC()
	return scanUser(d.sql.QueryRowContext(ctx,
		"INSERT INTO users (email, name, created_at, updated_at) VALUES ($1, $2, $3, $3) RETURNING "+userColumns+";",
		email, name, now))
}

// DeleteUser deletes a user. The foreign key cascades to weight_records in
// the same statement.
func (d *DB) DeleteUser(ctx context.Context, id int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM users WHERE id = $1;", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
