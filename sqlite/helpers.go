package sqlite

import (
	"fmt"
	"time"

	"github.com/fwojciec/catalogo"
)

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord reads one row selected with recordColumns.
func scanRecord(s scanner) (*catalogo.Record, error) {
	var r catalogo.Record
	var category string
	if err := s.Scan(&r.ID, &r.TypeCode, &category, &r.ItemName,
		&r.GroupCode, &r.ClassCode, &r.FamilyCode, &r.ItemCode,
		&r.GroupName, &r.ClassName, &r.FamilyName, &r.UnitName); err != nil {
		return nil, err
	}
	r.Category = catalogo.Category(category)
	return &r, nil
}

// formatTime formats a timestamp as RFC3339, or the empty string for the zero time.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// parseRFC3339 parses an RFC3339 formatted timestamp string. The empty
// string parses as the zero time.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}
