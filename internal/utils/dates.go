package utils

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

const dateOnlyLayout = "2006-01-02"

// Layouts without a zone are read in local time
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseInstant parses a date input into an instant. A bare YYYY-MM-DD is
// local midnight of that day.
func ParseInstant(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, ErrInvalidDate
	}

	if IsDateOnly(trimmed) {
		t, err := time.ParseInLocation(dateOnlyLayout, trimmed, time.Local)
		if err != nil {
			return time.Time{}, ErrInvalidDate
		}
		return t, nil
	}

	if t, err := time.Parse(time.RFC3339Nano, trimmed); err == nil {
		return t, nil
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, ErrInvalidDate
}

// IsDateOnly reports whether value has the YYYY-MM-DD shape
func IsDateOnly(value string) bool {
	if len(value) != len(dateOnlyLayout) {
		return false
	}
	for i, r := range value {
		switch i {
		case 4, 7:
			if r != '-' {
				return false
			}
		default:
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// IsValidDateFormat reports whether value parses to an instant
func IsValidDateFormat(value string) bool {
	_, err := ParseInstant(value)
	return err == nil
}

// StartOfDay returns local midnight of t's day
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of t's day
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
