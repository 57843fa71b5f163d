// Package schedule implements the room scheduling engine: conflict
// detection, availability-segment computation and room-suggestion ranking.
// The engine is pure - it holds no state and only reads its arguments, so
// every function is safe to call concurrently. Callers are responsible for
// supplying a consistent snapshot of reservations already filtered to the
// active statuses (see model.ActiveStatuses).
package schedule

import (
	"errors"
	"time"
)

var (
	ErrInvalidInterval = errors.New("interval start must be before end")
	ErrInvalidCapacity = errors.New("desired capacity must be positive")
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewInterval builds an interval, rejecting zero-length and inverted ranges.
func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{Start: start, End: end}, nil
}

func (i Interval) Valid() bool {
	return i.Start.Before(i.End)
}

// Overlaps reports whether two intervals share any instant. The predicate
// is strict: an interval ending exactly where the other starts does not
// overlap, so back-to-back bookings are allowed.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Clip returns the portion of i visible inside window. Callers must ensure
// the intervals overlap; Clip does not re-check.
func (i Interval) Clip(window Interval) Interval {
	clipped := i
	if clipped.Start.Before(window.Start) {
		clipped.Start = window.Start
	}
	if clipped.End.After(window.End) {
		clipped.End = window.End
	}
	return clipped
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}
