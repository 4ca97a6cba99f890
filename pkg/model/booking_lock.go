package model

import "time"

// BookingLock is an advisory lock serializing the check-then-insert sequence
// for one (facility, date). The _id doubles as the lock key; a TTL index on
// expires_at reclaims locks abandoned by crashed writers.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
