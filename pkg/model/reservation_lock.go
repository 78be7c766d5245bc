package model

import "time"

// ReservationLock is an advisory lock serializing reservation creation per
// listing. The unique _id makes concurrent acquisition fail with a duplicate
// key error, and the TTL index on expires_at reaps abandoned locks.
type ReservationLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
