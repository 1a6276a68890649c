package service

import (
	"context"
	"errors"
	"fmt"

	"learnkart/internal/domain"
	"learnkart/internal/matcher"
	"learnkart/internal/metrics"
	"learnkart/internal/repository"

	"github.com/google/uuid"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrCatalogUnavailable = errors.New("catalog is temporarily unavailable")
)

// RecommendationService matches a child profile against the current catalog
type RecommendationService interface {
	Recommend(ctx context.Context, userID, profileID uuid.UUID) (*matcher.Result, error)
}

type recommendationService struct {
	profileRepo repository.ProfileRepository
	productRepo repository.ProductRepository
	serviceRepo repository.ServiceRepository
	matcher     *matcher.Matcher
	breaker     *gobreaker.CircuitBreaker[interface{}]
	logger      *zap.Logger
}

// NewRecommendationService creates a new instance of RecommendationService
func NewRecommendationService(
	profileRepo repository.ProfileRepository,
	productRepo repository.ProductRepository,
	serviceRepo repository.ServiceRepository,
	m *matcher.Matcher,
	breaker BreakerConfig,
	logger *zap.Logger,
) RecommendationService {
	return &recommendationService{
		profileRepo: profileRepo,
		productRepo: productRepo,
		serviceRepo: serviceRepo,
		matcher:     m,
		breaker:     newBreaker(breaker, logger),
		logger:      logger,
	}
}

// Recommend returns repository.ErrProfileNotFound unless the profile belongs to userID.
// ErrCatalogUnavailable is returned while the catalog breaker is open.
func (s *recommendationService) Recommend(ctx context.Context, userID, profileID uuid.UUID) (*matcher.Result, error) {
	profile, err := s.profileRepo.FindByIDForUser(ctx, profileID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			metrics.RecordRecommendation(metrics.OutcomeNotFound)
			return nil, err
		}
		metrics.RecordRecommendation(metrics.OutcomeError)
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	products, services, err := s.loadCatalog(ctx)
	if err != nil {
		if isBreakerRejection(err) {
			metrics.RecordRecommendation(metrics.OutcomeUnavailable)
			return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		}
		metrics.RecordRecommendation(metrics.OutcomeError)
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	result := s.matcher.Match(*profile, products, services)

	metrics.RecordRecommendation(metrics.OutcomeOK)
	metrics.ObserveMatches(len(result.Products), len(result.Services))
	s.logger.Debug("Recommendations computed",
		zap.String("profile_id", profileID.String()),
		zap.Int("products", len(result.Products)),
		zap.Int("services", len(result.Services)),
	)

	return &result, nil
}

type catalogSnapshot struct {
	products []domain.Product
	services []domain.Service
}

// loadCatalog counts as a single breaker call however many reads it makes
func (s *recommendationService) loadCatalog(ctx context.Context) ([]domain.Product, []domain.Service, error) {
	out, err := s.breaker.Execute(func() (interface{}, error) {
		return s.readCatalog(ctx)
	})
	if err != nil {
		return nil, nil, err
	}

	snapshot := out.(*catalogSnapshot)
	return snapshot.products, snapshot.services, nil
}

// readCatalog fetches products and services concurrently
func (s *recommendationService) readCatalog(ctx context.Context) (*catalogSnapshot, error) {
	snapshot := &catalogSnapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		products, err := s.productRepo.ListAll(gctx)
		if err != nil {
			return err
		}
		snapshot.products = products
		return nil
	})

	g.Go(func() error {
		services, err := s.serviceRepo.ListAll(gctx)
		if err != nil {
			return err
		}
		snapshot.services = services
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return snapshot, nil
}
