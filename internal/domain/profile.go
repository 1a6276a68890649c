package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile is a child's learning profile, owned by a single user
type Profile struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	ChildName string    `json:"child_name" db:"child_name"`
	Age       int       `json:"age" db:"age"`
	Grade     int       `json:"grade" db:"grade"`
	Board     string    `json:"board" db:"board"`
	Interests Interests `json:"interests" db:"interests"`
	Location  string    `json:"location" db:"location"`
	Apartment string    `json:"apartment" db:"apartment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
