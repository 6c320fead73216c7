package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvModifyWindow = "BOOKING_MODIFY_WINDOW"
	EnvSlotLockTTL  = "BOOKING_SLOT_LOCK_TTL"

	EnvTimetableStartOfDay = "TIMETABLE_START_OF_DAY"
	EnvTimetableEndOfDay   = "TIMETABLE_END_OF_DAY"
	EnvTimetableSlotMin    = "TIMETABLE_SLOT_MINUTES"

	EnvKafkaEnabled = "KAFKA_ENABLED"
)
