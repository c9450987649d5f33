package memory

import (
	"strings"

	"weighttracker/internal/domain"
)

// normalizeWeight mimics a NUMERIC(5,2) column: the value is rendered with
// exactly two fractional digits and at most three integer digits.
func normalizeWeight(w string) (string, error) {
	intPart, frac, _ := strings.Cut(w, ".")
	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}
	if len(intPart) > 3 {
		return "", &domain.ValidationError{Field: "weight", Message: "Weight must be less than 1000"}
	}
	for len(frac) < 2 {
		frac += "0"
	}
	return intPart + "." + frac, nil
}
