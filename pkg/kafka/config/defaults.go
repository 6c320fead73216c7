package kafka_config

import "time"

const (
	DefaultKafkaBrokers = "localhost:9092"

	DefaultKafkaTopic    = "roombook.bookings"
	DefaultKafkaDLQTopic = "roombook.bookings.dlq"

	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1 // all replicas
	DefaultProducerCompression  = "snappy"
	DefaultProducerAsync        = false

	DefaultEnableMiddleware = true
)
