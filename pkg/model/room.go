package model

import "time"

const (
	RoomTypeLecture = "lecture"
	RoomTypeSeminar = "seminar"
	RoomTypeLab     = "lab"
	RoomTypeMeeting = "meeting"
)

type Room struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Venue     string    `json:"venue" bson:"venue" validate:"required,min=2,max=100"`
	Building  string    `json:"building" bson:"building" validate:"required,min=1,max=100"`
	Location  string    `json:"location" bson:"location" validate:"omitempty,max=100"`
	Floor     int       `json:"floor" bson:"floor" validate:"gte=-10,lte=200"`
	Capacity  int       `json:"capacity" bson:"capacity" validate:"required,min=1,max=1000"`
	Type      string    `json:"type" bson:"type" validate:"required,oneof=lecture seminar lab meeting"`
	Equipment []string  `json:"equipment" bson:"equipment" validate:"omitempty,max=30,dive,required"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// RoomUpdate is a partial patch; identity is immutable so no ID field.
type RoomUpdate struct {
	Name      string    `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Venue     string    `json:"venue,omitempty" validate:"omitempty,min=2,max=100"`
	Building  string    `json:"building,omitempty" validate:"omitempty,min=1,max=100"`
	Location  *string   `json:"location,omitempty" validate:"omitempty,max=100"`
	Floor     *int      `json:"floor,omitempty" validate:"omitempty,gte=-10,lte=200"`
	Capacity  *int      `json:"capacity,omitempty" validate:"omitempty,min=1,max=1000"`
	Type      string    `json:"type,omitempty" validate:"omitempty,oneof=lecture seminar lab meeting"`
	Equipment *[]string `json:"equipment,omitempty" validate:"omitempty,max=30,dive,required"`
}

// RoomFilter narrows room listings. Capacity is a minimum; Location
// matches case-insensitively against location and venue.
type RoomFilter struct {
	Capacity int
	Type     string
	Building string
	Location string
}
