package model

import (
	"time"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusRejected  = "rejected"
	StatusExpired   = "expired"
)

// ActiveStatuses lists the reservation statuses that occupy a room. Only
// these participate in conflict and availability computation; cancelled,
// rejected and expired reservations are inert and must be filtered out at
// the persistence boundary before reaching the scheduling engine.
func ActiveStatuses() []string {
	return []string{StatusPending, StatusConfirmed}
}

type Reservation struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	OrgID      string    `json:"org_id" bson:"org_id" validate:"required,min=1,max=64"`
	RoomID     string    `json:"room_id" bson:"room_id" validate:"required,mongodb"`
	Title      string    `json:"title" bson:"title" validate:"required,min=2,max=120"`
	StartTime  time.Time `json:"start_time" bson:"start_time" validate:"required"`
	EndTime    time.Time `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	Status     string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled rejected expired"`
	Recurrence string    `json:"recurrence,omitempty" bson:"recurrence,omitempty" validate:"omitempty,max=512"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type ReservationUpdate struct {
	Title      string     `json:"title,omitempty" validate:"omitempty,min=2,max=120"`
	StartTime  *time.Time `json:"start_time,omitempty" validate:"omitempty"`
	EndTime    *time.Time `json:"end_time,omitempty" validate:"omitempty"`
	Status     string     `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled rejected expired"`
	Recurrence *string    `json:"recurrence,omitempty" validate:"omitempty,max=512"`
}
