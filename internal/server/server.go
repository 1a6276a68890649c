package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"learnkart/internal/config"
	"learnkart/internal/database"
	"learnkart/internal/matcher"
	"learnkart/internal/metrics"
	custommiddleware "learnkart/internal/middleware"
	"learnkart/internal/repository"
	"learnkart/internal/service"
	"learnkart/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     database.Service
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db database.Service) *Server {
	s := &Server{
		config: cfg,
		logger: logger,
		db:     db,
	}

	router := chi.NewRouter()

	router.Use(custommiddleware.Stack(custommiddleware.StackOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowAnyOrigin: cfg.Server.IsDevelopment(),
		Instrument:     metrics.Middleware,
		Logger:         logger,
	})...)

	router.Get("/health", s.health)
	router.Handle("/metrics", metrics.Handler())

	limits := custommiddleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.Requests,
		Window:            cfg.RateLimit.Window,
		KeyPrefix:         "learnkart:ratelimit",
	}

	// Repositories
	sqlDB := db.DB()
	userRepo := repository.NewUserRepository(sqlDB)
	refreshTokenRepo := repository.NewRefreshTokenRepository(sqlDB)
	profileRepo := repository.NewProfileRepository(sqlDB)
	productRepo := repository.NewProductRepository(sqlDB)
	serviceRepo := repository.NewServiceRepository(sqlDB)
	cartRepo := repository.NewCartRepository(sqlDB)
	orderRepo := repository.NewOrderRepository(sqlDB)
	bookingRepo := repository.NewBookingRepository(sqlDB)

	// Services
	userService := service.NewUserService(userRepo, refreshTokenRepo, service.TokenConfig{
		Secret:     cfg.JWT.Secret,
		AccessTTL:  cfg.JWT.AccessTTL(),
		RefreshTTL: cfg.JWT.RefreshTTL(),
	})
	profileService := service.NewProfileService(profileRepo)
	catalogService := service.NewCatalogService(productRepo, serviceRepo)
	recommendationService := service.NewRecommendationService(
		profileRepo,
		productRepo,
		serviceRepo,
		matcher.New(cfg.Matcher),
		service.BreakerConfig{
			Name:        "catalog",
			MaxFailures: cfg.Catalog.BreakerFailures,
			Timeout:     cfg.Catalog.BreakerTimeout,
		},
		logger,
	)
	cartService := service.NewCartService(cartRepo, orderRepo, logger)
	bookingService := service.NewBookingService(bookingRepo)

	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	adminMiddleware := custommiddleware.RequireAdmin(logger)
	authLimiter := custommiddleware.InProcessRateLimit(limits, logger)

	router.Group(func(r chi.Router) {
		r.Use(s.rateLimiter(limits))

		transport.NewUserHandler(userService, logger).RegisterRoutes(r, authMiddleware, authLimiter)
		transport.NewProfileHandler(profileService, logger).RegisterRoutes(r, authMiddleware)
		transport.NewCatalogHandler(catalogService, logger).RegisterRoutes(r, authMiddleware, adminMiddleware)
		transport.NewRecommendationHandler(recommendationService, logger).RegisterRoutes(r, authMiddleware)
		transport.NewCartHandler(cartService, logger).RegisterRoutes(r, authMiddleware)
		transport.NewBookingHandler(bookingService, logger).RegisterRoutes(r, authMiddleware)
	})

	s.Server = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

// rateLimiter uses Redis when it answers at startup, otherwise an in-process limiter
func (s *Server) rateLimiter(limits custommiddleware.RateLimitConfig) func(http.Handler) http.Handler {
	client := redis.NewClient(&redis.Options{
		Addr:     s.config.Redis.Addr(),
		Password: s.config.Redis.Password,
		DB:       s.config.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		s.logger.Warn("Redis unavailable, falling back to in-process rate limiting",
			zap.String("addr", s.config.Redis.Addr()),
			zap.Error(err),
		)
		_ = client.Close()
		return custommiddleware.InProcessRateLimit(limits, s.logger)
	}

	s.redis = client
	return custommiddleware.RateLimitMiddleware(client, limits, s.logger)
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		s.logger.Error("Health check failed", zap.Error(err))
		custommiddleware.RespondWithJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:   "unavailable",
			Database: "down",
		})
		return
	}

	custommiddleware.RespondWithJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Database: "up",
	})
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	_ = s.logger.Sync()
	return nil
}
