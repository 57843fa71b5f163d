package model

import (
	"time"
)

// ReservationLock is an advisory lock serializing concurrent booking
// attempts on the same room slot. The ID encodes the slot coordinates; a
// TTL index on ExpiresAt reaps locks abandoned by crashed requests.
type ReservationLock struct {
	ID        string    `bson:"_id"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}
