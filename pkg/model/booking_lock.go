package model

import "time"

// BookingLock is an advisory per-car lock document. Its unique _id keeps
// two concurrent creations for the same car from passing the overlap
// check together; ExpiresAt backs a TTL index so crashed holders cannot
// wedge a car forever.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
