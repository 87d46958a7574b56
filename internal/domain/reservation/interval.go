package reservation

import (
	"time"

	"github.com/BruksfildServices01/court-booking/internal/httperr"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval normalizes both ends to UTC and rejects empty ranges.
func NewInterval(start, end time.Time) (Interval, error) {
	if start.IsZero() {
		return Interval{}, httperr.ErrValidation("invalid_interval", "start_at", "is required")
	}
	if end.IsZero() {
		return Interval{}, httperr.ErrValidation("invalid_interval", "end_at", "is required")
	}
	if !end.After(start) {
		return Interval{}, httperr.ErrValidation("invalid_interval", "end_at", "must be after start_at")
	}
	return Interval{Start: start.UTC(), End: end.UTC()}, nil
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps uses the same test as the storage query: a.start < b.end AND a.end > b.start.
// Back-to-back intervals do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}
