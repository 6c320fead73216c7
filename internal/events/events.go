// Package events publishes booking lifecycle notifications. Consumers
// (email digests, occupancy dashboards) live outside this service, so
// publishing is fire-and-forget: a broker outage never fails the HTTP
// request that triggered the event.
package events

import (
	"context"

	"roombook/pkg/logger"
	"roombook/pkg/model"

	pkgkafka "roombook/pkg/kafka"
)

const (
	TypeBookingCreated   = "booking.created"
	TypeBookingUpdated   = "booking.updated"
	TypeBookingCancelled = "booking.cancelled"
	TypeBookingDeleted   = "booking.deleted"
)

type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	BookingUpdated(ctx context.Context, booking *model.Booking)
	BookingCancelled(ctx context.Context, booking *model.Booking)
	BookingDeleted(ctx context.Context, id string)
	Close() error
}

type producer interface {
	Publish(ctx context.Context, msg pkgkafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	producer producer
	log      *logger.Logger
	source   string
}

func NewKafkaPublisher(p producer, log *logger.Logger, source string) Publisher {
	return &kafkaPublisher{
		producer: p,
		log:      log,
		source:   source,
	}
}

func (k *kafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	k.publish(ctx, TypeBookingCreated, booking.ID, booking)
}

func (k *kafkaPublisher) BookingUpdated(ctx context.Context, booking *model.Booking) {
	k.publish(ctx, TypeBookingUpdated, booking.ID, booking)
}

func (k *kafkaPublisher) BookingCancelled(ctx context.Context, booking *model.Booking) {
	k.publish(ctx, TypeBookingCancelled, booking.ID, booking)
}

func (k *kafkaPublisher) BookingDeleted(ctx context.Context, id string) {
	k.publish(ctx, TypeBookingDeleted, id, map[string]string{"id": id})
}

func (k *kafkaPublisher) Close() error {
	return k.producer.Close()
}

func (k *kafkaPublisher) publish(ctx context.Context, eventType, key string, payload any) {
	msg := pkgkafka.NewMessage().
		WithKey(key).
		WithValue(payload).
		WithEventType(eventType).
		WithSchemaVersion("1").
		WithSource(k.source).
		Build()

	if err := k.producer.Publish(ctx, msg); err != nil {
		k.log.Error("Failed to publish event",
			"event_type", eventType,
			"key", key,
			"error", err,
		)
	}
}

// nopPublisher drops every event. Used when Kafka is disabled and in
// tests.
type nopPublisher struct{}

func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) BookingCreated(context.Context, *model.Booking)   {}
func (nopPublisher) BookingUpdated(context.Context, *model.Booking)   {}
func (nopPublisher) BookingCancelled(context.Context, *model.Booking) {}
func (nopPublisher) BookingDeleted(context.Context, string)           {}
func (nopPublisher) Close() error                                     { return nil }
