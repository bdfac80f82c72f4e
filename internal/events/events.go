// Package events publishes reservation lifecycle events to a message broker
// so that downstream consumers (kitchen display, notifications) can react
// without polling the database.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/tablebook/internal/domain"
)

type Type string

const (
	ReservationCreated       Type = "reservation.created"
	ReservationUpdated       Type = "reservation.updated"
	ReservationDeleted       Type = "reservation.deleted"
	ReservationStatusChanged Type = "reservation.status_changed"
	ReservationLocked        Type = "reservation.locked"
)

// Event is the payload sent to the broker.
type Event struct {
	Type          Type          `json:"type"`
	ReservationID uuid.UUID     `json:"reservation_id"`
	Date          string        `json:"date"`
	Status        domain.Status `json:"status"`
	Tables        []int64       `json:"tables"`
	OccurredAt    time.Time     `json:"occurred_at"`
}

// FromReservation builds an event of type t describing r.
func FromReservation(t Type, r *domain.Reservation) Event {
	return Event{
		Type:          t,
		ReservationID: r.ID,
		Date:          r.Date.Format(domain.DateLayout),
		Status:        r.Status,
		Tables:        r.Tables,
		OccurredAt:    time.Now().UTC(),
	}
}

func (e Event) encode() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop drops every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
