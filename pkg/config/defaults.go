package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "roombook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Owners may edit or cancel a booking only while more than this
	// much time remains before its start.
	DefaultModifyWindow = 1 * time.Hour

	// Advisory slot locks auto-expire so a crashed request cannot
	// wedge a slot.
	DefaultSlotLockTTL = 10 * time.Second

	DefaultTimetableStartOfDay = "08:00"
	DefaultTimetableEndOfDay   = "18:00"
	DefaultTimetableSlotMin    = 60

	DefaultPaginationLimit = 100
)
