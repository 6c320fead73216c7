package model

import "time"

const (
	StatusConfirmed = "confirmed"
	StatusPending   = "pending"
	StatusCancelled = "cancelled"
)

// Booking reserves a room for the half-open interval
// [StartTime, EndTime) on Date. Times are minute-resolution HH:MM
// strings, the wire format of the booking frontend.
type Booking struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	RoomID      string    `json:"room_id" bson:"room_id" validate:"required,mongodb"`
	UserID      string    `json:"user_id" bson:"user_id" validate:"required"`
	Title       string    `json:"title" bson:"title" validate:"required,min=1,max=120"`
	Description string    `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=500"`
	Date        string    `json:"date" bson:"date" validate:"required,bookdate"`
	StartTime   string    `json:"start_time" bson:"start_time" validate:"required,timeofday"`
	EndTime     string    `json:"end_time" bson:"end_time" validate:"required,timeofday"`
	Status      string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// BookingUpdate is a partial patch. Status is deliberately absent:
// the only status transition, confirmed to cancelled, goes through the
// cancel operation.
type BookingUpdate struct {
	Title       string  `json:"title,omitempty" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Date        string  `json:"date,omitempty" validate:"omitempty,bookdate"`
	StartTime   string  `json:"start_time,omitempty" validate:"omitempty,timeofday"`
	EndTime     string  `json:"end_time,omitempty" validate:"omitempty,timeofday"`
}

// BookingFilter narrows booking listings; empty fields match everything.
type BookingFilter struct {
	RoomID string
	Date   string
	UserID string
}

// StartsAt resolves the booking's start to a wall-clock instant in loc.
func (b *Booking) StartsAt(loc *time.Location) (time.Time, error) {
	return CombineDateTime(b.Date, b.StartTime, loc)
}

// TimeSlot is one cell of a room's day timetable.
type TimeSlot struct {
	Start     string   `json:"start"`
	End       string   `json:"end"`
	Available bool     `json:"available"`
	Booking   *Booking `json:"booking,omitempty"`
}
