package transport

import (
	"errors"
	"net/http"

	"learnkart/internal/middleware"
	"learnkart/internal/repository"
	"learnkart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// errorStatus maps domain and store errors onto HTTP statuses.
// Errors not listed here are internal.
var errorStatus = []struct {
	err    error
	status int
}{
	{service.ErrNoInterests, http.StatusBadRequest},
	{service.ErrInvalidRange, http.StatusBadRequest},
	{service.ErrInvalidRating, http.StatusBadRequest},
	{service.ErrInvalidQuantity, http.StatusBadRequest},
	{service.ErrInvalidBookingType, http.StatusBadRequest},
	{service.ErrInvalidBookingDate, http.StatusBadRequest},
	{service.ErrInvalidBookingTime, http.StatusBadRequest},
	{repository.ErrCartEmpty, http.StatusBadRequest},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrInvalidToken, http.StatusUnauthorized},
	{service.ErrTokenExpired, http.StatusUnauthorized},
	{repository.ErrProfileNotFound, http.StatusNotFound},
	{repository.ErrProductNotFound, http.StatusNotFound},
	{repository.ErrServiceNotFound, http.StatusNotFound},
	{repository.ErrCartItemNotFound, http.StatusNotFound},
	{repository.ErrUserNotFound, http.StatusNotFound},
	{repository.ErrUserAlreadyExists, http.StatusConflict},
	{service.ErrCatalogUnavailable, http.StatusServiceUnavailable},
}

// respondWithServiceError writes the envelope for err. Unknown errors are
// logged and reported as fallback with a 500.
func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, err error, fallback string) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			middleware.RespondWithError(w, e.status, e.err.Error())
			return
		}
	}

	logger.Error(fallback, zap.Error(err))
	middleware.RespondWithError(w, http.StatusInternalServerError, fallback)
}

// callerID returns the authenticated user id, answering 401 when it is absent
func callerID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		logger.Error("User ID not found in context", zap.String("path", r.URL.Path))
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses a uuid URL parameter. A malformed id cannot name an existing
// row, so it is reported with notFound's message and a 404.
func pathID(w http.ResponseWriter, r *http.Request, param string, notFound error) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, notFound.Error())
		return uuid.Nil, false
	}
	return id, true
}
