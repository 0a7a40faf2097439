package services

import (
	"fmt"
	"time"
)

// ParseDate parses a date string in ISO 8601 format (YYYY-MM-DD), the
// format HTML5 date inputs submit
func ParseDate(dateStr string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: expected YYYY-MM-DD")
	}
	return parsed, nil
}

// ParseOptionalDate parses an optional date field; empty input yields nil
func ParseOptionalDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}
	parsed, err := ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
