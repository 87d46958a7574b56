package handlers

import (
	"strings"
	"time"
)

// parseTimeParam accepts RFC 3339, "2006-01-02 15:04" or "2006-01-02".
// Values without an offset are read in loc. The result is UTC.
func parseTimeParam(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", value, loc); err == nil {
		return t.UTC(), nil
	}

	t, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// optionalTimeParam returns nil for an empty query value.
func optionalTimeParam(value string, loc *time.Location) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := parseTimeParam(value, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
