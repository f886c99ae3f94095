package sqlite

import (
	"database/sql"
	"fmt"
	"time"
)

// layouts accepted when reading timestamps back. Rows written by this package
// are RFC3339; the others cover CURRENT_TIMESTAMP defaults and date-only values.
var readLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// FormatTimeForDB formats a time.Time value as RFC3339 string for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatTimePtrForDB formats a *time.Time value as RFC3339 string, returning nil if the pointer is nil
func FormatTimePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatTimeForDB(*t)
}

// FormatNullTimeForDB formats a sql.Null[time.Time], returning nil when it is not valid
func FormatNullTimeForDB(t sql.Null[time.Time]) interface{} {
	if !t.Valid {
		return nil
	}
	return FormatTimeForDB(t.V)
}

// ParseTimeFromDB parses a timestamp string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	for _, layout := range readLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time format: %q", s)
}

// NullableString converts an optional string to a database value
func NullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
