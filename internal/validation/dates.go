package validation

import (
	"strings"
	"time"

	"github.com/prayag-camps/magh-mela-api/internal/domain"
)

const DateLayout = "2006-01-02"

// ParseDate accepts a calendar date or a full RFC 3339 timestamp (what a
// browser Date serializes to) and returns midnight UTC of that calendar day.
func ParseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, domain.ValidationError{Field: field, Msg: "is required"}
	}
	if d, err := time.Parse(DateLayout, value); err == nil {
		return d, nil
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, domain.ValidationError{Field: field, Msg: "must be a date like 2026-01-14", Value: value}
}
