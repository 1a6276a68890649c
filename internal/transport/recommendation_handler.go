package transport

import (
	"net/http"

	"learnkart/internal/middleware"
	"learnkart/internal/repository"
	"learnkart/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RecommendationResponse lists the catalog entries that fit a child profile
type RecommendationResponse struct {
	Products []ProductResponse `json:"products"`
	Services []ServiceResponse `json:"services"`
}

// RecommendationHandler serves matched products and services for a profile
type RecommendationHandler struct {
	recommendationService service.RecommendationService
	logger                *zap.Logger
}

// NewRecommendationHandler creates a new RecommendationHandler
func NewRecommendationHandler(recommendationService service.RecommendationService, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
		logger:                logger,
	}
}

// RegisterRoutes mounts /api/recommendations behind authentication
func (h *RecommendationHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.With(authMiddleware).Get("/api/recommendations/{profileId}", h.Recommend)
}

// Recommend matches the catalog against one of the caller's profiles
func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r, h.logger)
	if !ok {
		return
	}
	profileID, ok := pathID(w, r, "profileId", repository.ErrProfileNotFound)
	if !ok {
		return
	}

	result, err := h.recommendationService.Recommend(r.Context(), userID, profileID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to build recommendations")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, RecommendationResponse{
		Products: toProductResponses(result.Products),
		Services: toServiceResponses(result.Services),
	})
}
