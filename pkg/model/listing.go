package model

import "time"

// Listing is a rentable property owned by exactly one host.
type Listing struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	HostID       string    `json:"host_id" bson:"host_id" validate:"required,mongodb"`
	Title        string    `json:"title" bson:"title" validate:"required,min=2,max=150"`
	Address      string    `json:"address" bson:"address" validate:"required,min=2,max=200"`
	City         string    `json:"city" bson:"city" validate:"required,min=1,max=100"`
	Category     string    `json:"category" bson:"category" validate:"required,min=2,max=50"`
	NightlyPrice float64   `json:"nightly_price" bson:"nightly_price" validate:"required,gt=0"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// ListingFilter narrows public listing searches. Zero values mean "no filter".
// City matching is case-insensitive, Category is exact, MaxPrice is an
// inclusive upper bound.
type ListingFilter struct {
	City     string
	Category string
	MaxPrice float64
}
