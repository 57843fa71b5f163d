package service

import (
	"context"
	"testing"
	"time"

	roomserrors "roomly/internal/rooms/errors"
	"roomly/internal/rooms/validator"
	"roomly/pkg/cache"
	"roomly/pkg/config"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/logger"
	"roomly/pkg/model"
	"roomly/pkg/schedule"

	"go.mongodb.org/mongo-driver/mongo"
)

// Mock repository for testing
type mockRoomRepository struct {
	createFunc     func(ctx context.Context, room *model.Room) error
	findByIDFunc   func(ctx context.Context, orgID string, id string) (*model.Room, error)
	findAllFunc    func(ctx context.Context, orgID string, limit int, offset int64) ([]*model.Room, error)
	findActiveFunc func(ctx context.Context, orgID string, siteID string, minCapacity int) ([]*model.Room, error)
	updateFunc     func(ctx context.Context, orgID string, id string, room *model.Room) (*mongo.UpdateResult, error)
	deleteFunc     func(ctx context.Context, orgID string, id string) error
	countFunc      func(ctx context.Context, orgID string) (int64, error)
}

func (m *mockRoomRepository) Create(ctx context.Context, room *model.Room) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, room)
	}
	room.ID = "64b0c8f2a1d2e3f4a5b6c7d1"
	return nil
}

func (m *mockRoomRepository) FindByID(ctx context.Context, orgID string, id string) (*model.Room, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, orgID, id)
	}
	return &model.Room{ID: id, OrgID: orgID, Name: "Salle Voltaire", Capacity: 8, IsActive: true}, nil
}

func (m *mockRoomRepository) FindAll(ctx context.Context, orgID string, limit int, offset int64) ([]*model.Room, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, orgID, limit, offset)
	}
	return []*model.Room{}, nil
}

func (m *mockRoomRepository) FindActive(ctx context.Context, orgID string, siteID string, minCapacity int) ([]*model.Room, error) {
	if m.findActiveFunc != nil {
		return m.findActiveFunc(ctx, orgID, siteID, minCapacity)
	}
	return []*model.Room{}, nil
}

func (m *mockRoomRepository) Update(ctx context.Context, orgID string, id string, room *model.Room) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, orgID, id, room)
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockRoomRepository) Delete(ctx context.Context, orgID string, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, orgID, id)
	}
	return nil
}

func (m *mockRoomRepository) Count(ctx context.Context, orgID string) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, orgID)
	}
	return 0, nil
}

type mockReservationReader struct {
	findActiveFunc func(ctx context.Context, orgID string, roomID string, startTime, endTime time.Time) ([]*model.Reservation, error)
}

func (m *mockReservationReader) FindActiveByRoomAndWindow(ctx context.Context, orgID string, roomID string, startTime, endTime time.Time) ([]*model.Reservation, error) {
	if m.findActiveFunc != nil {
		return m.findActiveFunc(ctx, orgID, roomID, startTime, endTime)
	}
	return []*model.Reservation{}, nil
}

func newTestService(repo *mockRoomRepository, reservations *mockReservationReader) *roomService {
	log := logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})

	cfg := &config.Config{
		Log:         log,
		ReadTimeout: 5 * time.Second,
	}

	return &roomService{
		repo:         repo,
		reservations: reservations,
		validator:    validator.NewRoomValidator(log),
		cache:        cache.New(nil, time.Minute, log),
		cfg:          cfg,
	}
}

func window(t *testing.T, start, end time.Time) schedule.Interval {
	t.Helper()
	w, err := schedule.NewInterval(start, end)
	if err != nil {
		t.Fatalf("invalid window: %v", err)
	}
	return w
}

func TestAvailability_MapsAndClipsReservations(t *testing.T) {
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	reservations := &mockReservationReader{
		findActiveFunc: func(ctx context.Context, orgID, roomID string, start, end time.Time) ([]*model.Reservation, error) {
			return []*model.Reservation{
				{
					ID:        "64b0c8f2a1d2e3f4a5b6c7d2",
					StartTime: base.Add(-time.Hour),
					EndTime:   base.Add(time.Hour),
					Status:    model.StatusConfirmed,
				},
				{
					ID:        "64b0c8f2a1d2e3f4a5b6c7d3",
					StartTime: base.Add(2 * time.Hour),
					EndTime:   base.Add(3 * time.Hour),
					Status:    model.StatusPending,
				},
			}, nil
		},
	}
	service := newTestService(&mockRoomRepository{}, reservations)

	segments, err := service.Availability(context.Background(), "org-1", "64b0c8f2a1d2e3f4a5b6c7d1", window(t, base, base.Add(8*time.Hour)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if !segments[0].Start.Equal(base) {
		t.Errorf("expected first segment clipped to window start, got %v", segments[0].Start)
	}
	if segments[0].Status != schedule.SegmentBusy {
		t.Errorf("expected confirmed reservation to map to busy, got %q", segments[0].Status)
	}
	if segments[1].Status != schedule.SegmentPending {
		t.Errorf("expected pending reservation to map to pending, got %q", segments[1].Status)
	}
}

func TestAvailability_UnknownRoom(t *testing.T) {
	repo := &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, orgID, id string) (*model.Room, error) {
			return nil, roomserrors.ErrNotFound
		},
	}
	service := newTestService(repo, &mockReservationReader{})

	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	_, err := service.Availability(context.Background(), "org-1", "64b0c8f2a1d2e3f4a5b6c7d1", window(t, base, base.Add(time.Hour)))
	if err == nil {
		t.Fatal("expected error for unknown room")
	}

	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected %s error, got %v", apperrors.CodeNotFound, err)
	}
}

func TestSuggestions_RanksByCapacityTier(t *testing.T) {
	rooms := []*model.Room{
		{ID: "64b0c8f2a1d2e3f4a5b6c7a1", OrgID: "org-1", Name: "A", Capacity: 6, IsActive: true},
		{ID: "64b0c8f2a1d2e3f4a5b6c7a2", OrgID: "org-1", Name: "B", Capacity: 8, IsActive: true},
		{ID: "64b0c8f2a1d2e3f4a5b6c7a3", OrgID: "org-1", Name: "C", Capacity: 12, IsActive: true},
		{ID: "64b0c8f2a1d2e3f4a5b6c7a4", OrgID: "org-1", Name: "D", Capacity: 20, IsActive: true},
	}

	var capturedMin int
	repo := &mockRoomRepository{
		findActiveFunc: func(ctx context.Context, orgID, siteID string, minCapacity int) ([]*model.Room, error) {
			capturedMin = minCapacity
			return rooms, nil
		},
	}
	service := newTestService(repo, &mockReservationReader{})

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	suggestions, err := service.Suggestions(context.Background(), "org-1", "", 6, window(t, base, base.Add(time.Hour)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if capturedMin != 6 {
		t.Errorf("expected capacity floor pushed to store, got %d", capturedMin)
	}

	wantScores := []int{50, 45, 30, 20}
	if len(suggestions) != len(wantScores) {
		t.Fatalf("expected %d suggestions, got %d", len(wantScores), len(suggestions))
	}
	for i, want := range wantScores {
		if suggestions[i].MatchScore != want {
			t.Errorf("suggestion %d: expected score %d, got %d (room %s)", i, want, suggestions[i].MatchScore, suggestions[i].Room.Name)
		}
	}
}

func TestSuggestions_ExcludesConflictedRoom(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	busyRoom := "64b0c8f2a1d2e3f4a5b6c7a1"

	repo := &mockRoomRepository{
		findActiveFunc: func(ctx context.Context, orgID, siteID string, minCapacity int) ([]*model.Room, error) {
			return []*model.Room{
				{ID: busyRoom, OrgID: "org-1", Name: "A", Capacity: 6, IsActive: true},
				{ID: "64b0c8f2a1d2e3f4a5b6c7a2", OrgID: "org-1", Name: "B", Capacity: 8, IsActive: true},
			}, nil
		},
	}
	reservations := &mockReservationReader{
		findActiveFunc: func(ctx context.Context, orgID, roomID string, start, end time.Time) ([]*model.Reservation, error) {
			if roomID == busyRoom {
				return []*model.Reservation{
					{ID: "64b0c8f2a1d2e3f4a5b6c7d2", StartTime: start, EndTime: end, Status: model.StatusPending},
				}, nil
			}
			return []*model.Reservation{}, nil
		},
	}
	service := newTestService(repo, reservations)

	suggestions, err := service.Suggestions(context.Background(), "org-1", "", 6, window(t, base, base.Add(time.Hour)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}
	if suggestions[0].Room.ID == busyRoom {
		t.Error("expected conflicted room to be excluded")
	}
}

func TestSuggestions_InvalidCapacity(t *testing.T) {
	service := newTestService(&mockRoomRepository{}, &mockReservationReader{})

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	_, err := service.Suggestions(context.Background(), "org-1", "", 0, window(t, base, base.Add(time.Hour)))
	if err == nil {
		t.Fatal("expected error for non-positive capacity")
	}

	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected %s error, got %v", apperrors.CodeInvalidInput, err)
	}
}

func TestUpdate_MergesPartialUpdate(t *testing.T) {
	existing := &model.Room{
		ID:        "64b0c8f2a1d2e3f4a5b6c7a1",
		OrgID:     "org-1",
		Name:      "Salle Voltaire",
		Capacity:  8,
		Equipment: []string{"wifi"},
		IsActive:  true,
	}

	var updated *model.Room
	repo := &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, orgID, id string) (*model.Room, error) {
			return existing, nil
		},
		updateFunc: func(ctx context.Context, orgID, id string, room *model.Room) (*mongo.UpdateResult, error) {
			updated = room
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		},
	}
	service := newTestService(repo, &mockReservationReader{})

	capacity := 10
	err := service.Update(context.Background(), "org-1", existing.ID, &model.RoomUpdate{Capacity: &capacity})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated == nil {
		t.Fatal("expected update to reach the repository")
	}
	if updated.Capacity != 10 {
		t.Errorf("expected capacity 10, got %d", updated.Capacity)
	}
	if updated.Name != "Salle Voltaire" {
		t.Errorf("expected untouched name to survive merge, got %q", updated.Name)
	}
}
