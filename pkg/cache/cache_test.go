package cache

import (
	"context"
	"testing"
	"time"

	"roomly/pkg/logger"
	"roomly/pkg/schedule"
)

func TestCache_NilClientDegrades(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Service: "test"})
	c := New(nil, time.Minute, log)

	if c.Enabled() {
		t.Error("cache with nil client must report disabled")
	}

	var out []string
	if c.Get(context.Background(), "k", &out) {
		t.Error("Get on disabled cache must miss")
	}
	// Must not panic.
	c.Set(context.Background(), "k", []string{"v"})
}

func TestKeys_AreStableAndDistinct(t *testing.T) {
	window, err := schedule.NewInterval(
		time.Unix(1000, 0).UTC(),
		time.Unix(2000, 0).UTC(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := AvailabilityKey("acme", "room1", window)
	if a != "availability:acme:room1:1000:2000" {
		t.Errorf("unexpected availability key: %s", a)
	}
	if a == AvailabilityKey("acme", "room2", window) {
		t.Error("keys for different rooms must differ")
	}

	s := SuggestionsKey("acme", "", 6, window)
	if s != "suggestions:acme:-:6:1000:2000" {
		t.Errorf("unexpected suggestions key: %s", s)
	}
	if s == SuggestionsKey("acme", "north", 6, window) {
		t.Error("keys for different sites must differ")
	}
}
