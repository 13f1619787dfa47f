package dto

import "time"

// BookReservationRequest payload for booking a table.
type BookReservationRequest struct {
	GuestName  string    `json:"guest_name" validate:"required,min=2,max=120"`
	GuestPhone string    `json:"guest_phone" validate:"max=32"`
	PartySize  int       `json:"party_size" validate:"required,gte=1,lte=20"`
	StartsAt   time.Time `json:"starts_at" validate:"required"`
}
