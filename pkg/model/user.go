package model

import "time"

const (
	RoleAdmin    = "admin"
	RoleLecturer = "lecturer"
)

type User struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Email      string    `json:"email" bson:"email" validate:"required,email"`
	Name       string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Role       string    `json:"role" bson:"role" validate:"required,oneof=admin lecturer"`
	Department string    `json:"department,omitempty" bson:"department,omitempty" validate:"omitempty,max=100"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Actor is the caller identity supplied by the identity boundary.
// It is trusted input; no authentication happens in this service.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
