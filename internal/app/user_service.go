// Package app holds the application services and business logic.
package app

import (
	"context"
	"strings"

	"weighttracker/internal/domain"
)

// UserService exposes read access to users and the startup bootstrap.
type UserService struct {
	users domain.UserRepository
}

// NewUserService creates a UserService backed by the given repository.
func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

// Get returns the user with the given id, or nil when there is none.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "fetch user", Err: err}
	}
	return u, nil
}

// EnsureUser returns the user with the given email, creating it first if it
// does not exist yet.
func (s *UserService) EnsureUser(ctx context.Context, email, name string) (*domain.User, bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, false, &domain.ValidationError{Field: "email", Message: "email is required"}
	}
	if strings.TrimSpace(name) == "" {
		return nil, false, &domain.ValidationError{Field: "name", Message: "name is required"}
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, false, &domain.PersistenceError{Op: "fetch user", Err: err}
	}
	if u != nil {
		return u, false, nil
	}
	u, err = s.users.CreateUser(ctx, email, strings.TrimSpace(name))
	if err != nil {
		return nil, false, &domain.PersistenceError{Op: "create user", Err: err}
	}
	return u, true, nil
}
