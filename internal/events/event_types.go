package events

import (
	"time"

	"github.com/stormkid2009/restooo/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventReservationCreated   EventType = "reservation_created"
	EventReservationCancelled EventType = "reservation_cancelled"
	EventMenuChanged          EventType = "menu_changed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID            string      `json:"id"`
	Type          EventType   `json:"type"`
	ReservationID string      `json:"reservation_id,omitempty"`
	Actor         Actor       `json:"actor"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
}

// ReservationCreatedPayload payload.
type ReservationCreatedPayload struct {
	TableID          string    `json:"table_id"`
	GuestName        string    `json:"guest_name"`
	PartySize        int       `json:"party_size"`
	StartsAt         time.Time `json:"starts_at"`
	ConfirmationCode string    `json:"confirmation_code"`
}

// ReservationCancelledPayload payload.
type ReservationCancelledPayload struct {
	TableID  string    `json:"table_id"`
	StartsAt time.Time `json:"starts_at"`
}

// MenuChangedPayload payload.
type MenuChangedPayload struct {
	ItemID string `json:"item_id"`
	Action string `json:"action"`
}
