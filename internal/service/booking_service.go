package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"learnkart/internal/domain"
	"learnkart/internal/repository"

	"github.com/google/uuid"
)

const (
	BookingDateLayout = "2006-01-02"
	BookingTimeLayout = "15:04"
)

var (
	ErrInvalidBookingType = errors.New("booking type must be intro or class")
	ErrInvalidBookingDate = errors.New("booking date must be YYYY-MM-DD")
	ErrInvalidBookingTime = errors.New("booking time must be HH:MM")
)

// BookingInput is a raw booking request
type BookingInput struct {
	ServiceID   uuid.UUID
	BookingType string
	BookingDate string
	BookingTime string
}

// BookingService books intro sessions and classes with service providers
type BookingService interface {
	Create(ctx context.Context, userID uuid.UUID, in BookingInput) (*domain.Booking, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.BookingDetail, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
}

// NewBookingService creates a new instance of BookingService
func NewBookingService(bookingRepo repository.BookingRepository) BookingService {
	return &bookingService{bookingRepo: bookingRepo}
}

// Create stores a pending booking. Unknown services yield repository.ErrServiceNotFound.
func (s *bookingService) Create(ctx context.Context, userID uuid.UUID, in BookingInput) (*domain.Booking, error) {
	if in.BookingType != domain.BookingTypeIntro && in.BookingType != domain.BookingTypeClass {
		return nil, ErrInvalidBookingType
	}

	date, err := time.Parse(BookingDateLayout, in.BookingDate)
	if err != nil {
		return nil, ErrInvalidBookingDate
	}

	at, err := time.Parse(BookingTimeLayout, in.BookingTime)
	if err != nil {
		return nil, ErrInvalidBookingTime
	}

	booking := &domain.Booking{
		ID:          uuid.New(),
		UserID:      userID,
		ServiceID:   in.ServiceID,
		BookingType: in.BookingType,
		BookingDate: date,
		BookingTime: at.Format(BookingTimeLayout),
		Status:      domain.BookingStatusPending,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return booking, nil
}

func (s *bookingService) List(ctx context.Context, userID uuid.UUID) ([]domain.BookingDetail, error) {
	bookings, err := s.bookingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}
