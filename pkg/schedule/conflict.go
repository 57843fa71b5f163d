package schedule

import (
	"roomly/pkg/model"
)

// FirstConflict returns the first reservation in existing that overlaps the
// candidate interval, or nil when the slot is free. The scan follows input
// order; which of several overlapping reservations is reported is not part
// of the contract, so callers needing the earliest-starting conflict must
// sort first.
func FirstConflict(candidate Interval, existing []*model.Reservation) (*model.Reservation, error) {
	if !candidate.Valid() {
		return nil, ErrInvalidInterval
	}

	for _, r := range existing {
		if candidate.Overlaps(Interval{Start: r.StartTime, End: r.EndTime}) {
			return r, nil
		}
	}
	return nil, nil
}
