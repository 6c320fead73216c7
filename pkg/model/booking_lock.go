package model

import "time"

// BookingLock is an advisory lock keyed by slot coordinates. A unique
// _id plus a TTL index on expires_at make it safe against crashed
// holders.
type BookingLock struct {
	ID        string    `bson:"_id"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}
