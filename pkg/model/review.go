package model

import "time"

// Review is a client's rating of a listing. A review may only exist when the
// client has at least one confirmed reservation for the listing. Multiple
// reviews per (client, listing) pair are allowed.
type Review struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ListingID string    `json:"listing_id" bson:"listing_id" validate:"required,mongodb"`
	ClientID  string    `json:"client_id" bson:"client_id" validate:"required,mongodb"`
	Rating    int       `json:"rating" bson:"rating" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment" bson:"comment" validate:"required,min=1,max=2000"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// ReviewWithAuthor joins a review with the reviewer's name for the public
// listing review feed.
type ReviewWithAuthor struct {
	Review        `bson:",inline"`
	AuthorName    string `json:"author_name" bson:"-"`
	AuthorSurname string `json:"author_surname" bson:"-"`
}
