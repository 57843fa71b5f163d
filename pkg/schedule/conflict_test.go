package schedule

import (
	"testing"

	"roomly/pkg/model"
)

func reservation(t *testing.T, id string, startMin, endMin int, status string) *model.Reservation {
	t.Helper()
	return &model.Reservation{
		ID:        id,
		RoomID:    "64b0c8f2a1d2e3f4a5b6c7d8",
		Title:     "weekly sync",
		StartTime: at(startMin),
		EndTime:   at(endMin),
		Status:    status,
	}
}

func TestFirstConflict_EmptyStore(t *testing.T) {
	conflict, err := FirstConflict(iv(t, 10, 20), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conflict != nil {
		t.Errorf("expected no conflict against empty store, got %q", conflict.ID)
	}
}

func TestFirstConflict_AdjacentReservations(t *testing.T) {
	existing := []*model.Reservation{
		reservation(t, "before", 0, 10, model.StatusConfirmed),
		reservation(t, "after", 20, 30, model.StatusPending),
	}

	conflict, err := FirstConflict(iv(t, 10, 20), existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conflict != nil {
		t.Errorf("back-to-back reservations must not conflict, got %q", conflict.ID)
	}
}

func TestFirstConflict_Containment(t *testing.T) {
	contained := reservation(t, "contained", 10, 20, model.StatusConfirmed)
	conflict, err := FirstConflict(iv(t, 5, 25), []*model.Reservation{contained})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conflict != contained {
		t.Error("candidate fully containing a reservation must conflict")
	}

	containing := reservation(t, "containing", 5, 25, model.StatusPending)
	conflict, err = FirstConflict(iv(t, 10, 20), []*model.Reservation{containing})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conflict != containing {
		t.Error("candidate fully inside a reservation must conflict")
	}
}

func TestFirstConflict_ReturnsFirstInScanOrder(t *testing.T) {
	existing := []*model.Reservation{
		reservation(t, "later", 15, 25, model.StatusConfirmed),
		reservation(t, "earlier", 5, 12, model.StatusConfirmed),
	}

	conflict, err := FirstConflict(iv(t, 10, 20), existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conflict == nil || conflict.ID != "later" {
		t.Errorf("expected first overlap in input order, got %+v", conflict)
	}
}

func TestFirstConflict_InvalidCandidate(t *testing.T) {
	bad := Interval{Start: at(20), End: at(10)}
	if _, err := FirstConflict(bad, nil); err != ErrInvalidInterval {
		t.Errorf("expected ErrInvalidInterval, got %v", err)
	}
}
