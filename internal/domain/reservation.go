package domain

import "time"

// ReservationStatus tracks the reservation lifecycle.
type ReservationStatus string

const (
	ReservationStatusBooked    ReservationStatus = "BOOKED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
)

// Reservation books a table for a party at a time slot.
type Reservation struct {
	ID               string            `json:"id"`
	ConfirmationCode string            `json:"confirmation_code"`
	TableID          string            `json:"table_id"`
	GuestName        string            `json:"guest_name"`
	GuestPhone       string            `json:"guest_phone"`
	PartySize        int               `json:"party_size"`
	StartsAt         time.Time         `json:"starts_at"`
	Status           ReservationStatus `json:"status"`
	CreatedBy        string            `json:"created_by"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}
