package adaptgql

import "weighttracker/internal/domain"

// resolverError exposes the taxonomy code under extensions.code.
type resolverError struct {
	err  error
	code string
}

func (e *resolverError) Error() string { return e.err.Error() }

func (e *resolverError) Unwrap() error { return e.err }

// Extensions is picked up by graphql-go when rendering the error.
func (e *resolverError) Extensions() map[string]any {
	return map[string]any{"code": e.code}
}

func wrapError(err error) error {
	code := domain.ErrorCode(err)
	if code == "" {
		code = "INTERNAL"
	}
	return &resolverError{err: err, code: code}
}
