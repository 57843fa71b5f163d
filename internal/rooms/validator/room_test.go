package validator

import (
	"testing"

	"roomly/pkg/logger"
	"roomly/pkg/model"
)

func newTestValidator() *RoomValidator {
	log := logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return NewRoomValidator(log)
}

func validRoom() *model.Room {
	return &model.Room{
		OrgID:     "org-1",
		Name:      "Salle Voltaire",
		Capacity:  8,
		Equipment: []string{"wifi", "écran"},
		IsActive:  true,
	}
}

func TestValidate_ValidRoom(t *testing.T) {
	v := newTestValidator()

	if err := v.Validate(validRoom()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingName(t *testing.T) {
	v := newTestValidator()

	room := validRoom()
	room.Name = ""

	if err := v.Validate(room); err == nil {
		t.Fatal("expected validation error for missing name")
	}
}

func TestValidate_CapacityBounds(t *testing.T) {
	v := newTestValidator()

	room := validRoom()
	room.Capacity = 0
	if err := v.Validate(room); err == nil {
		t.Fatal("expected validation error for zero capacity")
	}

	room.Capacity = 501
	if err := v.Validate(room); err == nil {
		t.Fatal("expected validation error for oversized capacity")
	}
}

func TestValidateUpdate_PartialUpdate(t *testing.T) {
	v := newTestValidator()

	capacity := 12
	if err := v.ValidateUpdate(&model.RoomUpdate{Capacity: &capacity}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateUpdate_InvalidCapacity(t *testing.T) {
	v := newTestValidator()

	capacity := 0
	if err := v.ValidateUpdate(&model.RoomUpdate{Capacity: &capacity}); err == nil {
		t.Fatal("expected validation error for zero capacity")
	}
}
