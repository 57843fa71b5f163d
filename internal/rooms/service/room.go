package service

import (
	"context"
	"errors"
	roomserrors "roomly/internal/rooms/errors"
	"roomly/internal/rooms/repository"
	"roomly/internal/rooms/validator"
	"roomly/pkg/cache"
	"roomly/pkg/config"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/model"
	"roomly/pkg/sanitizer"
	"roomly/pkg/schedule"
	"sync"
	"time"
)

// ReservationReader is the slice of the reservations store this service
// needs: the active reservations of one room inside a window. The concrete
// implementation lives in the reservations context.
type ReservationReader interface {
	FindActiveByRoomAndWindow(ctx context.Context, orgID string, roomID string, startTime time.Time, endTime time.Time) ([]*model.Reservation, error)
}

type RoomService interface {
	Create(ctx context.Context, orgID string, room *model.Room) error
	GetByID(ctx context.Context, orgID string, id string) (*model.Room, error)
	GetAll(ctx context.Context, orgID string, limit int, offset int64) ([]*model.Room, int64, error)
	Update(ctx context.Context, orgID string, id string, updates *model.RoomUpdate) error
	Delete(ctx context.Context, orgID string, id string) error
	Availability(ctx context.Context, orgID string, roomID string, window schedule.Interval) ([]schedule.Segment, error)
	Suggestions(ctx context.Context, orgID string, siteID string, desiredCapacity int, window schedule.Interval) ([]schedule.Suggestion, error)
}

type roomService struct {
	repo         repository.RoomRepository
	reservations ReservationReader
	validator    *validator.RoomValidator
	cache        *cache.Cache
	cfg          *config.Config
}

func NewRoomService(
	repo repository.RoomRepository,
	reservations ReservationReader,
	validator *validator.RoomValidator,
	cache *cache.Cache,
	cfg *config.Config,
) RoomService {
	return &roomService{
		repo:         repo,
		reservations: reservations,
		validator:    validator,
		cache:        cache,
		cfg:          cfg,
	}
}

func (s *roomService) Create(ctx context.Context, orgID string, room *model.Room) error {
	room.OrgID = orgID
	s.sanitize(room)
	if err := s.validate(room); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, room); err != nil {
		s.cfg.Log.Error("Failed to create room", "error", err)
		return apperrors.Internal("Failed to create room", err)
	}

	s.cfg.Log.Info("Room created successfully",
		"id", room.ID,
		"org_id", room.OrgID,
		"name", room.Name,
		"capacity", room.Capacity,
	)
	return nil
}

func (s *roomService) GetByID(ctx context.Context, orgID string, id string) (*model.Room, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	room, err := s.repo.FindByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", id)
		}
		if errors.Is(err, roomserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid room ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve room", err)
	}

	return room, nil
}

func (s *roomService) GetAll(ctx context.Context, orgID string, limit int, offset int64) ([]*model.Room, int64, error) {

	var count int64
	var rooms []*model.Room
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, orgID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count rooms", "error", errCount)
			errCount = apperrors.Internal("Failed to count rooms", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		rooms, errFind = s.repo.FindAll(ctx, orgID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list rooms", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve rooms", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return rooms, count, nil
}

func (s *roomService) Update(ctx context.Context, orgID string, id string, updates *model.RoomUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Room ID cannot be empty")
	}
	existing, err := s.repo.FindByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Room", id)
		}
		if errors.Is(err, roomserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid room ID format")
		}
		return apperrors.Internal("Failed to check room existence", err)
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Room update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}
	merged := s.mergeRoomUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return err
	}

	if _, err := s.repo.Update(ctx, orgID, id, merged); err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Room", id)
		}
		s.cfg.Log.Error("Failed to update room", "id", id, "error", err)
		return apperrors.Internal("Failed to update room", err)
	}

	s.cfg.Log.Info("Room updated successfully", "id", id)
	return nil
}

func (s *roomService) Delete(ctx context.Context, orgID string, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Room ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, orgID, id); err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Room", id)
		}
		if errors.Is(err, roomserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid room ID format")
		}
		return apperrors.Internal("Failed to delete room", err)
	}

	s.cfg.Log.Info("Room deleted successfully", "id", id)
	return nil
}

// Availability returns the busy and pending segments of one room inside the
// window, clipped to it and sorted by start. Results are cached for a short
// TTL; staleness is bounded by the TTL and tolerated.
func (s *roomService) Availability(ctx context.Context, orgID string, roomID string, window schedule.Interval) ([]schedule.Segment, error) {
	if _, err := s.GetByID(ctx, orgID, roomID); err != nil {
		return nil, err
	}

	key := cache.AvailabilityKey(orgID, roomID, window)
	var cached []schedule.Segment
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	active, err := s.reservations.FindActiveByRoomAndWindow(ctx, orgID, roomID, window.Start, window.End)
	if err != nil {
		s.cfg.Log.Error("Failed to load reservations for availability", "room_id", roomID, "error", err)
		return nil, apperrors.Internal("Failed to compute availability", err)
	}

	segments, err := schedule.Availability(window, active)
	if err != nil {
		return nil, apperrors.InvalidInput("start_time must be before end_time")
	}

	s.cache.Set(ctx, key, segments)
	return segments, nil
}

// Suggestions ranks the org's rooms for a meeting of desiredCapacity people
// inside the window. Candidate filtering happens in the store; scoring and
// ordering in the scheduling engine.
func (s *roomService) Suggestions(ctx context.Context, orgID string, siteID string, desiredCapacity int, window schedule.Interval) ([]schedule.Suggestion, error) {
	if desiredCapacity <= 0 {
		return nil, apperrors.InvalidInput("capacity must be a positive integer")
	}

	key := cache.SuggestionsKey(orgID, siteID, desiredCapacity, window)
	var cached []schedule.Suggestion
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	rooms, err := s.repo.FindActive(ctx, orgID, siteID, desiredCapacity)
	if err != nil {
		s.cfg.Log.Error("Failed to load candidate rooms", "error", err)
		return nil, apperrors.Internal("Failed to compute suggestions", err)
	}

	reservationsByRoom := make(map[string][]*model.Reservation, len(rooms))
	for _, room := range rooms {
		active, err := s.reservations.FindActiveByRoomAndWindow(ctx, orgID, room.ID, window.Start, window.End)
		if err != nil {
			s.cfg.Log.Error("Failed to load reservations for suggestions", "room_id", room.ID, "error", err)
			return nil, apperrors.Internal("Failed to compute suggestions", err)
		}
		reservationsByRoom[room.ID] = active
	}

	suggestions, err := schedule.Recommend(desiredCapacity, window, siteID, rooms, reservationsByRoom)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidCapacity) {
			return nil, apperrors.InvalidInput("capacity must be a positive integer")
		}
		if errors.Is(err, schedule.ErrInvalidInterval) {
			return nil, apperrors.InvalidInput("start_time must be before end_time")
		}
		return nil, apperrors.Internal("Failed to compute suggestions", err)
	}

	s.cfg.Log.Debug("Room suggestions computed",
		"org_id", orgID,
		"site_id", siteID,
		"capacity", desiredCapacity,
		"candidates", len(rooms),
		"suggestions", len(suggestions),
	)

	s.cache.Set(ctx, key, suggestions)
	return suggestions, nil
}

// --- Helpers ---

func (s *roomService) sanitize(room *model.Room) {
	room.Name = sanitizer.NormalizeName(room.Name)
	room.Equipment = sanitizer.NormalizeTags(room.Equipment)
}

func (s *roomService) mergeRoomUpdates(existing *model.Room, updates *model.RoomUpdate) *model.Room {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Capacity != nil {
		merged.Capacity = *updates.Capacity
	}
	if updates.SiteID != nil {
		merged.SiteID = *updates.SiteID
	}
	if updates.Equipment != nil {
		merged.Equipment = *updates.Equipment
	}
	if updates.IsActive != nil {
		merged.IsActive = *updates.IsActive
	}

	return &merged
}

func (s *roomService) validate(room *model.Room) error {
	if err := s.validator.Validate(room); err != nil {
		s.cfg.Log.Warn("Room validation failed", "error", err)
		return apperrors.Validation("Room validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}
