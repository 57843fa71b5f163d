package schedule

import (
	"testing"

	"roomly/pkg/model"
)

func room(id string, capacity int, tags ...string) *model.Room {
	return &model.Room{
		ID:        id,
		OrgID:     "acme",
		Name:      "room " + id,
		Capacity:  capacity,
		Equipment: tags,
		IsActive:  true,
	}
}

func TestRecommend_HardCapacityFloor(t *testing.T) {
	rooms := []*model.Room{room("small", 3), room("fits", 4)}

	suggestions, err := Recommend(4, iv(t, 0, 60), "", rooms, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].Room.ID != "fits" {
		t.Fatalf("room below desired capacity must never be suggested, got %+v", suggestions)
	}
}

func TestRecommend_ExcludesConflictedRooms(t *testing.T) {
	rooms := []*model.Room{room("free", 6), room("taken", 6), room("held", 6)}
	byRoom := map[string][]*model.Reservation{
		"taken": {reservation(t, "r1", 30, 90, model.StatusConfirmed)},
		"held":  {reservation(t, "r2", 10, 20, model.StatusPending)},
	}

	suggestions, err := Recommend(6, iv(t, 0, 60), "", rooms, byRoom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].Room.ID != "free" {
		t.Fatalf("conflicted rooms must be excluded, got %+v", suggestions)
	}
	if !suggestions[0].Available {
		t.Error("emitted suggestions must always be available")
	}
}

func TestRecommend_ExcludesInactiveAndOtherSites(t *testing.T) {
	inactive := room("inactive", 6)
	inactive.IsActive = false
	north := room("north", 6)
	north.SiteID = "north"
	south := room("south", 6)
	south.SiteID = "south"

	suggestions, err := Recommend(6, iv(t, 0, 60), "north", []*model.Room{inactive, north, south}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].Room.ID != "north" {
		t.Fatalf("expected only the active room on the requested site, got %+v", suggestions)
	}
}

func TestRecommend_TieredCapacityRanking(t *testing.T) {
	// Capacities [4,6,8,12,20] with desired 6: 4 is too small, 6 is ideal
	// (50), 8 is slightly large in the mid bracket (35+10), 12 oversized in
	// the mid bracket (20+10), 20 oversized outside it (20).
	rooms := []*model.Room{
		room("c20", 20),
		room("c4", 4),
		room("c12", 12),
		room("c6", 6),
		room("c8", 8),
	}

	suggestions, err := Recommend(6, iv(t, 0, 60), "", rooms, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		id    string
		score int
	}{
		{"c6", 50},
		{"c8", 45},
		{"c12", 30},
		{"c20", 20},
	}
	if len(suggestions) != len(want) {
		t.Fatalf("expected %d suggestions, got %d", len(want), len(suggestions))
	}
	for i, w := range want {
		got := suggestions[i]
		if got.Room.ID != w.id || got.MatchScore != w.score {
			t.Errorf("position %d: expected %s/%d, got %s/%d", i, w.id, w.score, got.Room.ID, got.MatchScore)
		}
	}
}

func TestRecommend_EquipmentBonus(t *testing.T) {
	plain := room("plain", 6)
	equipped := room("equipped", 6, "WiFi 6", "Grand écran")

	suggestions, err := Recommend(6, iv(t, 0, 60), "", []*model.Room{plain, equipped}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if suggestions[0].Room.ID != "equipped" || suggestions[0].MatchScore != 80 {
		t.Errorf("expected equipped room first at 80, got %s/%d", suggestions[0].Room.ID, suggestions[0].MatchScore)
	}
	if suggestions[1].MatchScore != 50 {
		t.Errorf("expected plain room at 50, got %d", suggestions[1].MatchScore)
	}
}

func TestRecommend_TiesPreferSmallerRoom(t *testing.T) {
	// Desired 10: capacities 14 and 15 both score 35+10, the smaller wins.
	suggestions, err := Recommend(10, iv(t, 0, 60), "", []*model.Room{room("c15", 15), room("c14", 14)}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if suggestions[0].MatchScore != suggestions[1].MatchScore {
		t.Fatalf("expected a score tie, got %d and %d", suggestions[0].MatchScore, suggestions[1].MatchScore)
	}
	if suggestions[0].Room.ID != "c14" {
		t.Errorf("ties must prefer the smaller room, got %s first", suggestions[0].Room.ID)
	}
}

func TestRecommend_TruncatesToTopTen(t *testing.T) {
	rooms := make([]*model.Room, 0, 15)
	for i := 0; i < 15; i++ {
		rooms = append(rooms, room(string(rune('a'+i)), 6))
	}

	suggestions, err := Recommend(6, iv(t, 0, 60), "", rooms, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(suggestions) != 10 {
		t.Errorf("expected top 10, got %d", len(suggestions))
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	rooms := []*model.Room{
		room("a", 6, "wifi"),
		room("b", 8),
		room("c", 12, "monitor"),
		room("d", 7),
	}
	byRoom := map[string][]*model.Reservation{
		"b": {reservation(t, "r", 0, 30, model.StatusConfirmed)},
	}

	first, err := Recommend(6, iv(t, 0, 60), "", rooms, byRoom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Recommend(6, iv(t, 0, 60), "", rooms, byRoom)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: length changed from %d to %d", i, len(first), len(again))
		}
		for j := range again {
			if again[j].Room.ID != first[j].Room.ID || again[j].MatchScore != first[j].MatchScore {
				t.Errorf("run %d: ordering or scores changed at %d", i, j)
			}
		}
	}
}

func TestRecommend_InvalidArguments(t *testing.T) {
	if _, err := Recommend(0, iv(t, 0, 60), "", nil, nil); err != ErrInvalidCapacity {
		t.Errorf("expected ErrInvalidCapacity, got %v", err)
	}
	bad := Interval{Start: at(60), End: at(0)}
	if _, err := Recommend(4, bad, "", nil, nil); err != ErrInvalidInterval {
		t.Errorf("expected ErrInvalidInterval, got %v", err)
	}
}
