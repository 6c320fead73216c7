package events

import (
	"context"
	"errors"
	"testing"

	pkgkafka "roombook/pkg/kafka"
	"roombook/pkg/logger"
	"roombook/pkg/model"
)

type fakeProducer struct {
	published []pkgkafka.Message
	err       error
}

func (f *fakeProducer) Publish(ctx context.Context, msg pkgkafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeProducer) Close() error { return nil }

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
}

func TestKafkaPublisher_EnvelopesEvents(t *testing.T) {
	producer := &fakeProducer{}
	pub := NewKafkaPublisher(producer, testLogger(), "roombook")

	booking := &model.Booking{
		ID:        "64a0000000000000000000b2",
		RoomID:    "64a0000000000000000000a1",
		UserID:    "lecturer-1",
		Title:     "Algorithms lecture",
		Date:      "2024-08-05",
		StartTime: "09:00",
		EndTime:   "10:30",
		Status:    model.StatusConfirmed,
	}

	pub.BookingCreated(context.Background(), booking)
	pub.BookingCancelled(context.Background(), booking)
	pub.BookingDeleted(context.Background(), booking.ID)

	if len(producer.published) != 3 {
		t.Fatalf("expected 3 published messages, got %d", len(producer.published))
	}

	created := producer.published[0]
	if created.Key != booking.ID {
		t.Errorf("expected booking ID as partition key, got %q", created.Key)
	}
	if got := created.GetEventType(); got != TypeBookingCreated {
		t.Errorf("expected event type %s, got %s", TypeBookingCreated, got)
	}
	if created.GetEventID() == "" {
		t.Error("expected generated event ID")
	}
	if src, _ := created.GetHeader(pkgkafka.HeaderSource); src != "roombook" {
		t.Errorf("expected source header, got %q", src)
	}

	var decoded model.Booking
	if err := created.DecodeValue(&decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded.RoomID != booking.RoomID || decoded.StartTime != booking.StartTime {
		t.Error("payload must round-trip the booking")
	}

	if got := producer.published[1].GetEventType(); got != TypeBookingCancelled {
		t.Errorf("expected event type %s, got %s", TypeBookingCancelled, got)
	}
	if got := producer.published[2].GetEventType(); got != TypeBookingDeleted {
		t.Errorf("expected event type %s, got %s", TypeBookingDeleted, got)
	}
}

func TestKafkaPublisher_SwallowsBrokerErrors(t *testing.T) {
	producer := &fakeProducer{err: errors.New("broker down")}
	pub := NewKafkaPublisher(producer, testLogger(), "roombook")

	// Must not panic or propagate; publishing is fire-and-forget.
	pub.BookingCreated(context.Background(), &model.Booking{ID: "x"})
	pub.BookingDeleted(context.Background(), "x")
}
