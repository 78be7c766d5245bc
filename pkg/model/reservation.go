package model

import "time"

// Reservation statuses. A reservation is created pending, can be confirmed by
// a payment, and can be cancelled from either live state. Cancelled is
// terminal.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Reservation is a client's claim on a listing for a whole-day date range.
// StartDate and EndDate are stored as UTC midnight instants.
type Reservation struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ListingID string    `json:"listing_id" bson:"listing_id" validate:"required,mongodb"`
	ClientID  string    `json:"client_id" bson:"client_id" validate:"required,mongodb"`
	StartDate time.Time `json:"start_date" bson:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" bson:"end_date" validate:"required,gtfield=StartDate"`
	Status    string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Terminal reports whether the reservation can no longer change status.
func (r *Reservation) Terminal() bool {
	return r.Status == StatusCancelled
}

// DateRange is the public projection of a reservation's occupied days,
// returned by the reserved-dates endpoint.
type DateRange struct {
	StartDate time.Time `json:"start_date" bson:"start_date"`
	EndDate   time.Time `json:"end_date" bson:"end_date"`
}

// ReservationWithListing joins a reservation with the title of its listing
// for the client's reservation list.
type ReservationWithListing struct {
	Reservation  `bson:",inline"`
	ListingTitle string `json:"listing_title" bson:"-"`
}
