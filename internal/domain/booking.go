package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingTypeIntro = "intro"
	BookingTypeClass = "class"

	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking is a request for an intro session or a class with a service
type Booking struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	ServiceID   uuid.UUID `db:"service_id"`
	BookingType string    `db:"booking_type"`
	BookingDate time.Time `db:"booking_date"`
	BookingTime string    `db:"booking_time"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
}

// BookingDetail is a booking joined with its service
type BookingDetail struct {
	Booking
	ServiceName string
	TutorName   string
	Address     string
	Price       float64
}
