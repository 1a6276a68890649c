// Package matcher selects the products and services that fit a child profile.
//
// Matching is a pure filter over an in-memory catalog snapshot. Products must
// cover the child's age and grade and share at least one interest tag.
// Services must cover the child's age, be located in the configured service
// area and share at least one interest tag. Output keeps catalog order unless
// a Ranker is installed.
//
// A Matcher holds no mutable state and is safe for concurrent use.
package matcher

import (
	"sort"
	"strings"

	"learnkart/internal/domain"
)

// DefaultServiceArea is the only area services are currently offered in.
// Profile location and apartment fields do not take part in the area check.
const DefaultServiceArea = "sholinganallur"

// Config holds the matcher settings
type Config struct {
	// ServiceArea is compared against each service's area label after both
	// are trimmed and lower-cased. Empty disables the area filter.
	ServiceArea string
}

// DefaultConfig returns the production matcher settings
func DefaultConfig() Config {
	return Config{ServiceArea: DefaultServiceArea}
}

// Ranker orders two already-matched entries; it reports whether a sorts before b
type Ranker[T any] func(a, b T) bool

// Result holds the matched catalog entries
type Result struct {
	Products []domain.Product
	Services []domain.Service
}

// Matcher filters catalogs against a profile
type Matcher struct {
	area          string
	productRanker Ranker[domain.Product]
	serviceRanker Ranker[domain.Service]
}

// Option configures a Matcher
type Option func(*Matcher)

// WithProductRanker installs a ranking stage for matched products
func WithProductRanker(r Ranker[domain.Product]) Option {
	return func(m *Matcher) { m.productRanker = r }
}

// WithServiceRanker installs a ranking stage for matched services
func WithServiceRanker(r Ranker[domain.Service]) Option {
	return func(m *Matcher) { m.serviceRanker = r }
}

// New creates a Matcher
func New(cfg Config, opts ...Option) *Matcher {
	m := &Matcher{area: normalizeArea(cfg.ServiceArea)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ServiceArea returns the normalized service area
func (m *Matcher) ServiceArea() string {
	return m.area
}

// Match returns the products and services suited to the profile.
// It never fails; an empty result is a valid answer.
func (m *Matcher) Match(profile domain.Profile, products []domain.Product, services []domain.Service) Result {
	return Result{
		Products: m.MatchProducts(profile, products),
		Services: m.MatchServices(profile, services),
	}
}

// MatchProducts filters products by age, grade and interest overlap
func (m *Matcher) MatchProducts(profile domain.Profile, products []domain.Product) []domain.Product {
	matched := make([]domain.Product, 0)
	if profile.Interests.IsEmpty() {
		return matched
	}

	for _, p := range products {
		if m.productFits(profile, p) {
			matched = append(matched, p)
		}
	}

	if m.productRanker != nil {
		sort.SliceStable(matched, func(i, j int) bool {
			return m.productRanker(matched[i], matched[j])
		})
	}
	return matched
}

// MatchServices filters services by age, area and interest overlap
func (m *Matcher) MatchServices(profile domain.Profile, services []domain.Service) []domain.Service {
	matched := make([]domain.Service, 0)
	if profile.Interests.IsEmpty() {
		return matched
	}

	for _, s := range services {
		if m.serviceFits(profile, s) {
			matched = append(matched, s)
		}
	}

	if m.serviceRanker != nil {
		sort.SliceStable(matched, func(i, j int) bool {
			return m.serviceRanker(matched[i], matched[j])
		})
	}
	return matched
}

func (m *Matcher) productFits(profile domain.Profile, p domain.Product) bool {
	if !p.Ages.Contains(profile.Age) || !p.Grades.Contains(profile.Grade) {
		return false
	}
	return p.Interests.Overlaps(profile.Interests)
}

func (m *Matcher) serviceFits(profile domain.Profile, s domain.Service) bool {
	if !s.Ages.Contains(profile.Age) {
		return false
	}
	if !m.InArea(s) {
		return false
	}
	return s.Interests.Overlaps(profile.Interests)
}

// InArea reports whether the service is offered in the configured area
func (m *Matcher) InArea(s domain.Service) bool {
	if m.area == "" {
		return true
	}
	return normalizeArea(s.Area) == m.area
}

func normalizeArea(area string) string {
	return strings.ToLower(strings.TrimSpace(area))
}

// ByRating ranks services by rating, then by review count, both descending
func ByRating(a, b domain.Service) bool {
	if a.Rating != b.Rating {
		return a.Rating > b.Rating
	}
	return a.ReviewsCount > b.ReviewsCount
}
