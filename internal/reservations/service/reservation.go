package service

import (
	"context"
	"errors"
	"fmt"
	reservationserrors "roomly/internal/reservations/errors"
	"roomly/internal/reservations/events"
	"roomly/internal/reservations/repository"
	"roomly/internal/reservations/validator"
	"roomly/pkg/config"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/model"
	"roomly/pkg/sanitizer"
	"roomly/pkg/schedule"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

type ReservationService interface {
	Create(ctx context.Context, orgID string, reservation *model.Reservation) error
	GetByID(ctx context.Context, orgID string, id string) (*model.Reservation, error)
	GetAll(ctx context.Context, orgID string, limit int, offset int64) ([]*model.Reservation, int64, error)
	Update(ctx context.Context, orgID string, id string, updates *model.ReservationUpdate) error
	Delete(ctx context.Context, orgID string, id string) error
	SearchByRoom(ctx context.Context, orgID string, roomID string, startTime, endTime *time.Time, limit int, offset int64) ([]*model.Reservation, int64, error)
}

type reservationService struct {
	repo      repository.ReservationRepository
	lockRepo  repository.ReservationLockRepository
	validator *validator.ReservationValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewReservationService(
	repo repository.ReservationRepository,
	lockRepo repository.ReservationLockRepository,
	validator *validator.ReservationValidator,
	publisher events.Publisher,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *reservationService) Create(ctx context.Context, orgID string, reservation *model.Reservation) error {
	reservation.OrgID = orgID
	s.applyDefaults(reservation)
	s.sanitize(reservation)
	err := s.validate(reservation)
	if err != nil {
		return err
	}

	if reservation.StartTime.Before(time.Now().UTC()) {
		return apperrors.InvalidInput("Reservation cannot start in the past")
	}

	// Acquire advisory lock to prevent race conditions
	lockID, err := s.acquireSlotLock(ctx, orgID, reservation.RoomID, reservation.StartTime)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release reservation lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoConflict(sessCtx, reservation); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, reservation); err != nil {
			return apperrors.Internal("Failed to create reservation", err)
		}

		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create reservation", "error", err)
		return err
	}

	s.cfg.Log.Info("Reservation created successfully",
		"id", reservation.ID,
		"org_id", reservation.OrgID,
		"room_id", reservation.RoomID,
		"start_time", reservation.StartTime,
	)
	s.publisher.ReservationCreated(ctx, reservation)
	return nil
}

func (s *reservationService) GetByID(ctx context.Context, orgID string, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.repo.FindByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, reservationserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		if errors.Is(err, reservationserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid reservation ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve reservation", err)
	}

	return reservation, nil
}

func (s *reservationService) GetAll(ctx context.Context, orgID string, limit int, offset int64) ([]*model.Reservation, int64, error) {

	var count int64
	var reservations []*model.Reservation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, orgID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count reservations", "error", errCount)
			errCount = apperrors.Internal("Failed to count reservations", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		reservations, errFind = s.repo.FindAll(ctx, orgID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list reservations", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve reservations", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return reservations, count, nil
}

func (s *reservationService) Update(ctx context.Context, orgID string, id string, updates *model.ReservationUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}
	existing, err := s.repo.FindByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, reservationserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Reservation", id)
		}
		if errors.Is(err, reservationserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid reservation ID format")
		}
		return apperrors.Internal("Failed to check reservation existence", err)
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Reservation update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}
	merged := s.mergeReservationUpdates(existing, updates)
	s.sanitize(merged)
	err = s.validate(merged)
	if err != nil {
		return err
	}
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		// Only active reservations occupy the room; a cancellation can
		// never conflict with anything.
		if isActive(merged.Status) {
			if err := s.verifyNoConflict(sessCtx, merged); err != nil {
				return err
			}
		}
		if _, err := s.repo.Update(sessCtx, orgID, id, merged); err != nil {
			return apperrors.Internal("Failed to update reservation", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update reservation", "id", id, "error", err)
		return err
	}
	s.cfg.Log.Info("Reservation updated successfully", "id", id, "status", merged.Status)

	if isActive(existing.Status) && !isActive(merged.Status) {
		s.publisher.ReservationCancelled(ctx, merged)
	} else {
		s.publisher.ReservationUpdated(ctx, merged)
	}
	return nil
}

func (s *reservationService) Delete(ctx context.Context, orgID string, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, reservationserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Reservation", id)
		}
		if errors.Is(err, reservationserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid reservation ID format")
		}
		return apperrors.Internal("Failed to check reservation existence", err)
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Delete(sessCtx, orgID, id); err != nil {
			if errors.Is(err, reservationserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Reservation", id)
			}
			return apperrors.Internal("Failed to delete reservation", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cfg.Log.Info("Reservation deleted successfully", "id", id)
	existing.Status = model.StatusCancelled
	s.publisher.ReservationCancelled(ctx, existing)
	return nil
}

func (s *reservationService) SearchByRoom(ctx context.Context, orgID string, roomID string, startTime, endTime *time.Time, limit int, offset int64) ([]*model.Reservation, int64, error) {
	if roomID == "" {
		return nil, 0, apperrors.InvalidInput("Room ID is required")
	}

	var count int64
	var reservations []*model.Reservation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountByRoom(ctx, orgID, roomID, startTime, endTime)
		if err != nil {
			s.cfg.Log.Error("Failed to count reservations by room",
				"org_id", orgID,
				"room_id", roomID,
				"error", err,
			)
			errCount = apperrors.Internal("Failed to count reservations", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		reservations, err = s.repo.FindByRoom(ctx, orgID, roomID, startTime, endTime, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to search reservations",
				"org_id", orgID,
				"room_id", roomID,
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to search reservations", err)
		}
	}()

	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	s.cfg.Log.Debug("Reservation search completed",
		"org_id", orgID,
		"room_id", roomID,
		"count", len(reservations),
		"total_count", count,
	)
	return reservations, count, nil
}

// --- Helpers ---

func (s *reservationService) sanitize(r *model.Reservation) {
	r.Title = sanitizer.NormalizeTitle(r.Title)
}

func (s *reservationService) applyDefaults(r *model.Reservation) {
	if r.Status == "" {
		r.Status = model.StatusPending
	}
	r.StartTime = r.StartTime.UTC()
	r.EndTime = r.EndTime.UTC()
}

func (s *reservationService) mergeReservationUpdates(existing *model.Reservation, updates *model.ReservationUpdate) *model.Reservation {
	merged := *existing

	if updates.Title != "" {
		merged.Title = updates.Title
	}
	if updates.StartTime != nil {
		merged.StartTime = updates.StartTime.UTC()
	}
	if updates.EndTime != nil {
		merged.EndTime = updates.EndTime.UTC()
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}
	if updates.Recurrence != nil {
		merged.Recurrence = *updates.Recurrence
	}

	return &merged
}

func (s *reservationService) validate(reservation *model.Reservation) error {
	if err := s.validator.Validate(reservation); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "error", err)
		return apperrors.Validation("Reservation validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// verifyNoConflict re-checks the candidate slot against the currently
// committed reservations inside the transaction. The candidate's own ID is
// excluded so rescheduling a reservation never conflicts with itself.
func (s *reservationService) verifyNoConflict(ctx context.Context, reservation *model.Reservation) error {
	candidate, err := schedule.NewInterval(reservation.StartTime, reservation.EndTime)
	if err != nil {
		return apperrors.InvalidInput("Reservation end time must be after start time")
	}

	active, err := s.repo.FindActiveByRoomAndWindow(ctx, reservation.OrgID, reservation.RoomID, reservation.StartTime, reservation.EndTime)
	if err != nil {
		return apperrors.Internal("Failed to check existing reservations", err)
	}

	others := make([]*model.Reservation, 0, len(active))
	for _, r := range active {
		if r.ID == reservation.ID {
			continue
		}
		others = append(others, r)
	}

	conflict, err := schedule.FirstConflict(candidate, others)
	if err != nil {
		return apperrors.Internal("Failed to evaluate reservation conflicts", err)
	}
	if conflict != nil {
		return apperrors.Conflict(fmt.Sprintf(
			"Reservation time overlaps with existing reservation (%s - %s)",
			conflict.StartTime.Format(time.RFC3339),
			conflict.EndTime.Format(time.RFC3339),
		))
	}
	return nil
}

func isActive(status string) bool {
	return status == model.StatusPending || status == model.StatusConfirmed
}

// acquireSlotLock creates an advisory lock to prevent concurrent reservation
// creation on the same slot. Returns the lock ID if successful, or a conflict
// error if the lock already exists.
func (s *reservationService) acquireSlotLock(ctx context.Context, orgID, roomID string, startTime time.Time) (string, error) {
	lockID := fmt.Sprintf("reservation_lock_%s_%s_%d", orgID, roomID, startTime.Unix())

	lock := &model.ReservationLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.SlotLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This time slot is currently being reserved by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire reservation lock", err)
	}

	return lockID, nil
}

// releaseSlotLock removes the advisory lock
func (s *reservationService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
