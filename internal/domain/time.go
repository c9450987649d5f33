package domain

import (
	"strings"
	"time"
)

// ISOLayout renders timestamps in UTC with millisecond precision, e.g.
// 2025-10-19T08:00:00.000Z.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatTime renders t as an ISO-8601 string in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// ParseTimestamp parses a caller-supplied timestamp. Values without a zone
// are taken as UTC.
func ParseTimestamp(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &ValidationError{Field: field, Message: field + " must be an ISO-8601 timestamp"}
}
