package domain

import (
	"errors"
	"fmt"
)

// Error codes exposed to API clients.
const (
	CodeValidation  = "VALIDATION"
	CodeNotFound    = "NOT_FOUND"
	CodePersistence = "PERSISTENCE"
)

// ValidationError reports malformed caller input. It is always raised before
// anything is written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Code returns CodeValidation.
func (e *ValidationError) Code() string { return CodeValidation }

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	if e.Resource == "" {
		return "Not found"
	}
	return upperFirst(e.Resource) + " not found"
}

// Code returns CodeNotFound.
func (e *NotFoundError) Code() string { return CodeNotFound }

// PersistenceError wraps a storage failure with the failed operation, e.g.
// "Failed to fetch weight records: connection refused".
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("Failed to %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Code returns CodePersistence.
func (e *PersistenceError) Code() string { return CodePersistence }

// ErrorCode returns the taxonomy code for err, or "" for untyped errors.
func ErrorCode(err error) string {
	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ""
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func upperFirst(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
