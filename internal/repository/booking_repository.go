package repository

import (
	"context"
	"database/sql"
	"fmt"

	"learnkart/internal/domain"

	"github.com/google/uuid"
)

// BookingRepository defines the interface for booking data access
type BookingRepository interface {
	// Create returns ErrServiceNotFound when the service does not exist
	Create(ctx context.Context, booking *domain.Booking) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.BookingDetail, error)
}

type bookingRepository struct {
	db *sql.DB
}

// NewBookingRepository creates a new instance of BookingRepository
func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, service_id, booking_type, booking_date, booking_time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		booking.ID,
		booking.UserID,
		booking.ServiceID,
		booking.BookingType,
		booking.BookingDate,
		booking.BookingTime,
		booking.Status,
	).Scan(&booking.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrServiceNotFound
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// ListByUser returns bookings by date, newest first
func (r *bookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.BookingDetail, error) {
	query := `
		SELECT b.id, b.user_id, b.service_id, b.booking_type, b.booking_date, b.booking_time,
		       b.status, b.created_at, s.name, s.tutor_name, s.address, s.price
		FROM bookings b
		JOIN services s ON s.id = b.service_id
		WHERE b.user_id = $1
		ORDER BY b.booking_date DESC, b.booking_time DESC, b.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.BookingDetail, 0)
	for rows.Next() {
		var b domain.BookingDetail
		if err := rows.Scan(
			&b.ID,
			&b.UserID,
			&b.ServiceID,
			&b.BookingType,
			&b.BookingDate,
			&b.BookingTime,
			&b.Status,
			&b.CreatedAt,
			&b.ServiceName,
			&b.TutorName,
			&b.Address,
			&b.Price,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}
