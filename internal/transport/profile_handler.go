package transport

import (
	"net/http"

	"learnkart/internal/middleware"
	"learnkart/internal/repository"
	"learnkart/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProfileRequest is the body for creating or replacing a child profile
type ProfileRequest struct {
	ChildName string   `json:"childName" validate:"required,max=255"`
	Age       int      `json:"age" validate:"gte=1,lte=18"`
	Grade     int      `json:"grade" validate:"gte=1,lte=12"`
	Board     string   `json:"board" validate:"required,max=50"`
	Interests []string `json:"interests" validate:"interests"`
	Location  string   `json:"location" validate:"max=255"`
	Apartment string   `json:"apartment" validate:"max=255"`
}

func (req ProfileRequest) input() service.ProfileInput {
	return service.ProfileInput{
		ChildName: req.ChildName,
		Age:       req.Age,
		Grade:     req.Grade,
		Board:     req.Board,
		Interests: req.Interests,
		Location:  req.Location,
		Apartment: req.Apartment,
	}
}

// ProfileHandler serves the caller's child profiles
type ProfileHandler struct {
	profileService service.ProfileService
	logger         *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService service.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// RegisterRoutes mounts /api/profiles behind authentication
func (h *ProfileHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/profiles", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{profileId}", h.Get)
		r.Put("/{profileId}", h.Update)
	})
}

// Create adds a profile for the caller
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.logger)
	if !ok {
		return
	}

	var req ProfileRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithDecodeError(w, err)
		return
	}

	profile, err := h.profileService.Create(r.Context(), userID, req.input())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to create profile")
		return
	}

	h.logger.Info("Profile created",
		zap.String("user_id", userID.String()),
		zap.String("profile_id", profile.ID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, toProfileResponse(*profile))
}

// List returns the caller's profiles, oldest first
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.logger)
	if !ok {
		return
	}

	profiles, err := h.profileService.List(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to list profiles")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProfileResponses(profiles))
}

// Get returns one of the caller's profiles
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.logger)
	if !ok {
		return
	}
	profileID, ok := pathID(w, r, "profileId", repository.ErrProfileNotFound)
	if !ok {
		return
	}

	profile, err := h.profileService.Get(r.Context(), userID, profileID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to get profile")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProfileResponse(*profile))
}

// Update replaces one of the caller's profiles
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.logger)
	if !ok {
		return
	}
	profileID, ok := pathID(w, r, "profileId", repository.ErrProfileNotFound)
	if !ok {
		return
	}

	var req ProfileRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithDecodeError(w, err)
		return
	}

	profile, err := h.profileService.Update(r.Context(), userID, profileID, req.input())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to update profile")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProfileResponse(*profile))
}
