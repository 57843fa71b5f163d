// Package events publishes reservation lifecycle events to Kafka so other
// systems (notifications, analytics, calendar sync) can react without
// coupling to the booking flow. Publishing is best effort: a broker outage
// never fails a reservation that already committed.
package events

import (
	"context"
	"time"

	"roomly/pkg/kafka"
	"roomly/pkg/logger"
	"roomly/pkg/model"
)

const (
	Topic = "reservation-events"

	TypeCreated   = "reservation.created"
	TypeUpdated   = "reservation.updated"
	TypeCancelled = "reservation.cancelled"

	Source = "reservations-service"
)

// ReservationEvent is the payload carried by every reservation event.
type ReservationEvent struct {
	ReservationID string    `json:"reservation_id"`
	OrgID         string    `json:"org_id"`
	RoomID        string    `json:"room_id"`
	Title         string    `json:"title"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher emits reservation lifecycle events.
type Publisher interface {
	ReservationCreated(ctx context.Context, reservation *model.Reservation)
	ReservationUpdated(ctx context.Context, reservation *model.Reservation)
	ReservationCancelled(ctx context.Context, reservation *model.Reservation)
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		log:      log,
	}
}

func (p *kafkaPublisher) ReservationCreated(ctx context.Context, reservation *model.Reservation) {
	p.publish(ctx, TypeCreated, reservation)
}

func (p *kafkaPublisher) ReservationUpdated(ctx context.Context, reservation *model.Reservation) {
	p.publish(ctx, TypeUpdated, reservation)
}

func (p *kafkaPublisher) ReservationCancelled(ctx context.Context, reservation *model.Reservation) {
	p.publish(ctx, TypeCancelled, reservation)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType string, reservation *model.Reservation) {
	if p.producer == nil {
		return
	}

	payload := ReservationEvent{
		ReservationID: reservation.ID,
		OrgID:         reservation.OrgID,
		RoomID:        reservation.RoomID,
		Title:         reservation.Title,
		StartTime:     reservation.StartTime,
		EndTime:       reservation.EndTime,
		Status:        reservation.Status,
		OccurredAt:    time.Now().UTC(),
	}

	// Key on room ID so events for the same room stay ordered per partition.
	msg, err := kafka.NewMessage().
		WithKey(reservation.RoomID).
		WithValue(payload).
		WithEventType(eventType).
		WithSource(Source).
		Build()
	if err != nil {
		p.log.Error("Failed to build reservation event",
			"event_type", eventType,
			"reservation_id", reservation.ID,
			"error", err,
		)
		return
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish reservation event",
			"event_type", eventType,
			"reservation_id", reservation.ID,
			"error", err,
		)
		return
	}

	p.log.Debug("Reservation event published",
		"event_type", eventType,
		"reservation_id", reservation.ID,
		"room_id", reservation.RoomID,
	)
}
