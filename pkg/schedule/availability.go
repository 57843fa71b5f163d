package schedule

import (
	"sort"
	"time"

	"roomly/pkg/model"
)

type SegmentStatus string

const (
	SegmentBusy    SegmentStatus = "busy"
	SegmentPending SegmentStatus = "pending"
)

// Segment is the clipped, status-tagged portion of a reservation visible
// inside a query window. It represents only the visible part, not the
// reservation's true extent - timeline UIs render only what is in view.
type Segment struct {
	ID     string        `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Status SegmentStatus `json:"status"`
}

// Availability returns the occupied segments of a room within window,
// sorted ascending by clipped start (stable on ties). Reservations crossing
// a window boundary are truncated to the visible portion. Reservations that
// overlap each other - a stored-data anomaly - are emitted as-is rather
// than merged, so the anomaly stays visible downstream.
func Availability(window Interval, existing []*model.Reservation) ([]Segment, error) {
	if !window.Valid() {
		return nil, ErrInvalidInterval
	}

	segments := make([]Segment, 0, len(existing))
	for _, r := range existing {
		iv := Interval{Start: r.StartTime, End: r.EndTime}
		if !window.Overlaps(iv) {
			continue
		}
		clipped := iv.Clip(window)
		segments = append(segments, Segment{
			ID:     r.ID,
			Start:  clipped.Start,
			End:    clipped.End,
			Status: segmentStatus(r.Status),
		})
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Start.Before(segments[j].Start)
	})

	return segments, nil
}

// segmentStatus maps a reservation status to its segment label. Inert
// statuses never reach the engine, so anything not confirmed is pending.
func segmentStatus(status string) SegmentStatus {
	if status == model.StatusConfirmed {
		return SegmentBusy
	}
	return SegmentPending
}
