package transport

import (
	"net/http"

	"learnkart/internal/middleware"
	"learnkart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingRequest asks for an intro session or a class with a service
type BookingRequest struct {
	ServiceID   uuid.UUID `json:"serviceId" validate:"required"`
	BookingType string    `json:"bookingType" validate:"required,oneof=intro class"`
	BookingDate string    `json:"bookingDate" validate:"required,datetime=2006-01-02"`
	BookingTime string    `json:"bookingTime" validate:"required,datetime=15:04"`
}

// BookingHandler serves the caller's bookings
type BookingHandler struct {
	bookingService service.BookingService
	logger         *zap.Logger
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService service.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		logger:         logger,
	}
}

// RegisterRoutes mounts /api/bookings behind authentication
func (h *BookingHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Create)
		r.Get("/", h.List)
	})
}

// Create books a service for the caller
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.logger)
	if !ok {
		return
	}

	var req BookingRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithDecodeError(w, err)
		return
	}

	booking, err := h.bookingService.Create(r.Context(), userID, service.BookingInput{
		ServiceID:   req.ServiceID,
		BookingType: req.BookingType,
		BookingDate: req.BookingDate,
		BookingTime: req.BookingTime,
	})
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to create booking")
		return
	}

	h.logger.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("service_id", booking.ServiceID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, toBookingResponse(*booking))
}

// List returns the caller's bookings, newest first
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.logger)
	if !ok {
		return
	}

	bookings, err := h.bookingService.List(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to list bookings")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toBookingResponses(bookings))
}
