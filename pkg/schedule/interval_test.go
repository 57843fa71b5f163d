package schedule

import (
	"testing"
	"time"
)

var base = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

func iv(t *testing.T, startMin, endMin int) Interval {
	t.Helper()
	interval, err := NewInterval(at(startMin), at(endMin))
	if err != nil {
		t.Fatalf("NewInterval(%d, %d): unexpected error: %v", startMin, endMin, err)
	}
	return interval
}

func TestNewInterval_RejectsInvalidRanges(t *testing.T) {
	if _, err := NewInterval(at(10), at(10)); err != ErrInvalidInterval {
		t.Errorf("zero-length interval: expected ErrInvalidInterval, got %v", err)
	}
	if _, err := NewInterval(at(20), at(10)); err != ErrInvalidInterval {
		t.Errorf("inverted interval: expected ErrInvalidInterval, got %v", err)
	}
}

func TestOverlaps_Symmetry(t *testing.T) {
	cases := []struct {
		name string
		a, b Interval
	}{
		{"disjoint", iv(t, 0, 10), iv(t, 20, 30)},
		{"adjacent", iv(t, 0, 10), iv(t, 10, 20)},
		{"partial", iv(t, 0, 15), iv(t, 10, 20)},
		{"contained", iv(t, 0, 30), iv(t, 10, 20)},
		{"identical", iv(t, 5, 25), iv(t, 5, 25)},
	}

	for _, tc := range cases {
		if tc.a.Overlaps(tc.b) != tc.b.Overlaps(tc.a) {
			t.Errorf("%s: Overlaps is not symmetric", tc.name)
		}
	}
}

func TestOverlaps_AdjacencyIsNotOverlap(t *testing.T) {
	a := iv(t, 10, 20)

	if a.Overlaps(iv(t, 20, 30)) {
		t.Error("interval starting exactly at end must not overlap")
	}
	if a.Overlaps(iv(t, 0, 10)) {
		t.Error("interval ending exactly at start must not overlap")
	}
}

func TestOverlaps_Containment(t *testing.T) {
	if !iv(t, 5, 25).Overlaps(iv(t, 10, 20)) {
		t.Error("containing interval must overlap the contained one")
	}
	if !iv(t, 10, 20).Overlaps(iv(t, 5, 25)) {
		t.Error("contained interval must overlap the containing one")
	}
}

func TestClip_TruncatesToWindow(t *testing.T) {
	window := iv(t, 0, 100)

	clipped := iv(t, -50, 50).Clip(window)
	if !clipped.Start.Equal(at(0)) || !clipped.End.Equal(at(50)) {
		t.Errorf("expected [0,50), got [%v,%v)", clipped.Start, clipped.End)
	}

	clipped = iv(t, 50, 150).Clip(window)
	if !clipped.Start.Equal(at(50)) || !clipped.End.Equal(at(100)) {
		t.Errorf("expected [50,100), got [%v,%v)", clipped.Start, clipped.End)
	}

	inside := iv(t, 20, 40)
	clipped = inside.Clip(window)
	if clipped != inside {
		t.Errorf("interval inside window must be unchanged, got [%v,%v)", clipped.Start, clipped.End)
	}
}

func TestDuration(t *testing.T) {
	if d := iv(t, 0, 90).Duration(); d != 90*time.Minute {
		t.Errorf("expected 90m, got %v", d)
	}
}
