package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"learnkart/internal/domain"
	"learnkart/internal/matcher"
	"learnkart/internal/metrics"
	"learnkart/internal/repository"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recommendationFixture struct {
	svc      RecommendationService
	profiles *mockProfileRepository
	products *mockProductRepository
	services *mockServiceRepository
	owner    uuid.UUID
	profile  domain.Profile
}

func newRecommendationFixture(t *testing.T, breaker BreakerConfig) *recommendationFixture {
	t.Helper()

	owner := uuid.New()
	profile := domain.Profile{
		ID:        uuid.New(),
		UserID:    owner,
		ChildName: "Aarav",
		Age:       9,
		Grade:     4,
		Interests: domain.NewInterests("Science", "Math"),
		Location:  "Adyar",
	}

	products := &mockProductRepository{products: []domain.Product{
		{ID: uuid.New(), Name: "Robotic Hand", Ages: domain.Range{Min: 8, Max: 14}, Grades: domain.Range{Min: 3, Max: 9}, Interests: domain.ParseInterests("Science,Technology,Building")},
		{ID: uuid.New(), Name: "Music Machine", Ages: domain.Range{Min: 8, Max: 14}, Grades: domain.Range{Min: 3, Max: 9}, Interests: domain.ParseInterests("Music,Art")},
		{ID: uuid.New(), Name: "Kaleidoscope", Ages: domain.Range{Min: 5, Max: 10}, Grades: domain.Range{Min: 1, Max: 5}, Interests: domain.ParseInterests("Science,Art,Math")},
	}}
	services := &mockServiceRepository{services: []domain.Service{
		{ID: uuid.New(), Name: "Math Tutor", Ages: domain.Range{Min: 8, Max: 14}, Area: "Sholinganallur", Interests: domain.ParseInterests("Math")},
		{ID: uuid.New(), Name: "Math Tutor Central", Ages: domain.Range{Min: 8, Max: 14}, Area: "Chennai Central", Interests: domain.ParseInterests("Math")},
	}}
	profiles := newMockProfileRepository(profile)

	svc := NewRecommendationService(profiles, products, services, matcher.New(matcher.DefaultConfig()), breaker, zap.NewNop())

	return &recommendationFixture{
		svc:      svc,
		profiles: profiles,
		products: products,
		services: services,
		owner:    owner,
		profile:  profile,
	}
}

func names[T any](items []T, name func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, name(it))
	}
	return out
}

func TestRecommend_MatchesProfile(t *testing.T) {
	f := newRecommendationFixture(t, BreakerConfig{Name: "test-match"})
	before := testutil.ToFloat64(metrics.RecommendationsTotal.WithLabelValues(metrics.OutcomeOK))

	result, err := f.svc.Recommend(context.Background(), f.owner, f.profile.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"Robotic Hand", "Kaleidoscope"},
		names(result.Products, func(p domain.Product) string { return p.Name }))
	assert.Equal(t, []string{"Math Tutor"},
		names(result.Services, func(s domain.Service) string { return s.Name }))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RecommendationsTotal.WithLabelValues(metrics.OutcomeOK)))
}

func TestRecommend_ForeignOrUnknownProfile(t *testing.T) {
	f := newRecommendationFixture(t, BreakerConfig{Name: "test-foreign"})
	ctx := context.Background()

	_, err := f.svc.Recommend(ctx, uuid.New(), f.profile.ID)
	assert.ErrorIs(t, err, repository.ErrProfileNotFound)

	_, err = f.svc.Recommend(ctx, f.owner, uuid.New())
	assert.ErrorIs(t, err, repository.ErrProfileNotFound)

	assert.Equal(t, 0, f.products.calls, "catalog is not read for a missing profile")
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	f := newRecommendationFixture(t, BreakerConfig{Name: "test-empty"})
	f.products.products = nil
	f.services.services = nil

	result, err := f.svc.Recommend(context.Background(), f.owner, f.profile.ID)
	require.NoError(t, err)
	assert.NotNil(t, result.Products)
	assert.NotNil(t, result.Services)
	assert.Empty(t, result.Products)
	assert.Empty(t, result.Services)
}

func TestRecommend_BreakerOpensOnRepeatedFailures(t *testing.T) {
	f := newRecommendationFixture(t, BreakerConfig{Name: "test-open", MaxFailures: 2, Timeout: time.Hour})
	ctx := context.Background()
	f.products.err = errors.New("connection refused")

	for i := 0; i < 2; i++ {
		_, err := f.svc.Recommend(ctx, f.owner, f.profile.ID)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrCatalogUnavailable), "closed breaker passes the failure through")
	}

	calls := f.products.calls
	_, err := f.svc.Recommend(ctx, f.owner, f.profile.ID)
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.Equal(t, calls, f.products.calls, "open breaker does not reach the database")
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("test-open")))

	// recovery still requires the timeout to elapse
	f.products.err = nil
	_, err = f.svc.Recommend(ctx, f.owner, f.profile.ID)
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestRecommend_BreakerRecoversAfterTimeout(t *testing.T) {
	f := newRecommendationFixture(t, BreakerConfig{Name: "test-recover", MaxFailures: 1, Timeout: 50 * time.Millisecond})
	ctx := context.Background()
	f.services.err = errors.New("connection refused")

	_, err := f.svc.Recommend(ctx, f.owner, f.profile.ID)
	require.Error(t, err)

	f.services.err = nil
	time.Sleep(100 * time.Millisecond)

	result, err := f.svc.Recommend(ctx, f.owner, f.profile.ID)
	require.NoError(t, err)
	assert.Len(t, result.Services, 1)
}
