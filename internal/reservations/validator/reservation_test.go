package validator

import (
	"strings"
	"testing"
	"time"

	"roomly/pkg/logger"
	"roomly/pkg/model"
)

func newTestValidator() *ReservationValidator {
	log := logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return NewReservationValidator(log, 12*time.Hour)
}

func validReservation() *model.Reservation {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return &model.Reservation{
		OrgID:     "org-1",
		RoomID:    "64b0c8f2a1d2e3f4a5b6c7d1",
		Title:     "Sprint planning",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    model.StatusPending,
	}
}

func TestValidate_ValidReservation(t *testing.T) {
	v := newTestValidator()

	if err := v.Validate(validReservation()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	v := newTestValidator()

	err := v.Validate(&model.Reservation{})
	if err == nil {
		t.Fatal("expected validation error for empty reservation")
	}
	if !strings.Contains(err.Error(), "required") {
		t.Errorf("expected required-field errors, got %v", err)
	}
}

func TestValidate_InvalidRoomID(t *testing.T) {
	v := newTestValidator()

	reservation := validReservation()
	reservation.RoomID = "not-an-object-id"

	if err := v.Validate(reservation); err == nil {
		t.Fatal("expected validation error for malformed room ID")
	}
}

func TestValidate_InvalidStatus(t *testing.T) {
	v := newTestValidator()

	reservation := validReservation()
	reservation.Status = "tentative"

	if err := v.Validate(reservation); err == nil {
		t.Fatal("expected validation error for unknown status")
	}
}

func TestValidate_EndNotAfterStart(t *testing.T) {
	v := newTestValidator()

	reservation := validReservation()
	reservation.EndTime = reservation.StartTime

	if err := v.Validate(reservation); err == nil {
		t.Fatal("expected validation error for zero-length reservation")
	}

	reservation.EndTime = reservation.StartTime.Add(-time.Hour)
	if err := v.Validate(reservation); err == nil {
		t.Fatal("expected validation error for inverted range")
	}
}

func TestValidate_ExceedsMaxDuration(t *testing.T) {
	v := newTestValidator()

	reservation := validReservation()
	reservation.EndTime = reservation.StartTime.Add(13 * time.Hour)

	err := v.Validate(reservation)
	if err == nil {
		t.Fatal("expected validation error for overlong reservation")
	}
	if !strings.Contains(err.Error(), "longer than") {
		t.Errorf("expected duration message, got %v", err)
	}
}

func TestValidateUpdate_PartialUpdate(t *testing.T) {
	v := newTestValidator()

	title := "Retro"
	if err := v.ValidateUpdate(&model.ReservationUpdate{Title: title}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateUpdate_InvertedRange(t *testing.T) {
	v := newTestValidator()

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)

	err := v.ValidateUpdate(&model.ReservationUpdate{StartTime: &start, EndTime: &end})
	if err == nil {
		t.Fatal("expected validation error for inverted range")
	}
}
