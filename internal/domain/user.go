// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// User is the owner of weight records. Users are provisioned outside the
// weight-record API.
type User struct {
	ID        int64
	Email     string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserRepository defines the port for user persistence operations.
type UserRepository interface {
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, email, name string) (*User, error)
	// DeleteUser removes the user and, atomically, every weight record it owns.
	DeleteUser(ctx context.Context, id int64) (bool, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
