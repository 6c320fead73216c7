package validator

import (
	"strings"
	"testing"

	"roombook/pkg/logger"
	"roombook/pkg/model"
)

func newValidator() *BookingValidator {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return NewBookingValidator(log)
}

func validBooking() *model.Booking {
	return &model.Booking{
		RoomID:    "64a0000000000000000000a1",
		UserID:    "lecturer-1",
		Title:     "Algorithms lecture",
		Date:      "2024-08-05",
		StartTime: "09:00",
		EndTime:   "10:30",
		Status:    model.StatusConfirmed,
	}
}

func TestValidate_AcceptsWellFormedBooking(t *testing.T) {
	v := newValidator()
	if err := v.Validate(validBooking()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_FieldRules(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(b *model.Booking)
		wantField string
	}{
		{"missing room", func(b *model.Booking) { b.RoomID = "" }, "RoomID"},
		{"room id not object id", func(b *model.Booking) { b.RoomID = "room-1" }, "RoomID"},
		{"missing title", func(b *model.Booking) { b.Title = "" }, "Title"},
		{"date wrong format", func(b *model.Booking) { b.Date = "05/08/2024" }, "Date"},
		{"date not zero padded", func(b *model.Booking) { b.Date = "2024-8-5" }, "Date"},
		{"start time with seconds", func(b *model.Booking) { b.StartTime = "09:00:00" }, "StartTime"},
		{"start time out of range", func(b *model.Booking) { b.StartTime = "24:00" }, "StartTime"},
		{"end time 12h format", func(b *model.Booking) { b.EndTime = "9pm" }, "EndTime"},
		{"unknown status", func(b *model.Booking) { b.Status = "tentative" }, "Status"},
		{"end before start", func(b *model.Booking) { b.StartTime = "11:00"; b.EndTime = "10:00" }, "EndTime"},
		{"zero-length interval", func(b *model.Booking) { b.StartTime = "10:00"; b.EndTime = "10:00" }, "EndTime"},
	}

	v := newValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)

			err := v.Validate(b)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("expected error mentioning %s, got: %v", tt.wantField, err)
			}
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	v := newValidator()

	desc := "room change note"
	if err := v.ValidateUpdate(&model.BookingUpdate{Description: &desc}); err != nil {
		t.Fatalf("description-only update should pass: %v", err)
	}

	// A lone start time cannot be ordered against anything yet; the
	// merged booking is re-validated afterwards.
	if err := v.ValidateUpdate(&model.BookingUpdate{StartTime: "13:00"}); err != nil {
		t.Fatalf("single-sided time update should pass: %v", err)
	}

	if err := v.ValidateUpdate(&model.BookingUpdate{StartTime: "13:00", EndTime: "12:00"}); err == nil {
		t.Fatal("inverted interval must fail")
	}

	if err := v.ValidateUpdate(&model.BookingUpdate{Date: "not-a-date"}); err == nil {
		t.Fatal("malformed date must fail")
	}
}
