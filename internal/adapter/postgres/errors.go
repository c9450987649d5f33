package postgres

import (
	"errors"

	"github.com/lib/pq"

	"weighttracker/internal/domain"
)

// classify turns constraint failures the caller can act on into domain
// errors. Anything else is returned unchanged.
func classify(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code.Name() {
	case "foreign_key_violation":
		return &domain.NotFoundError{Resource: "user"}
	case "numeric_value_out_of_range":
		return &domain.ValidationError{Field: "weight", Message: "Weight must be less than 1000"}
	case "check_violation":
		if pqErr.Constraint == "weight_records_unit_check" {
			return &domain.ValidationError{Field: "unit", Message: `Unit must be either "kg" or "lbs"`}
		}
	}
	return err
}
