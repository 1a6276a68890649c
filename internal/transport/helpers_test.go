package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"learnkart/internal/domain"
	"learnkart/internal/matcher"
	"learnkart/internal/middleware"
	"learnkart/internal/repository"
	"learnkart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func passThrough(next http.Handler) http.Handler { return next }

// bearer signs an access token the way the user service does
func bearer(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.String(),
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}, auth string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	return decode[middleware.ErrorResponse](t, w).Error.Message
}

func authChain() func(http.Handler) http.Handler {
	return middleware.AuthMiddleware(testSecret, zap.NewNop())
}

type routes interface {
	RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler)
}

func routerFor(h routes) http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r, authChain())
	return r
}

// stubProfileService answers from a fixed set of profiles
type stubProfileService struct {
	profiles map[uuid.UUID]domain.Profile
	err      error
}

func (s *stubProfileService) Create(ctx context.Context, userID uuid.UUID, in service.ProfileInput) (*domain.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	interests := domain.NewInterests(in.Interests...)
	if interests.IsEmpty() {
		return nil, service.ErrNoInterests
	}
	p := domain.Profile{
		ID: uuid.New(), UserID: userID, ChildName: in.ChildName, Age: in.Age, Grade: in.Grade,
		Board: in.Board, Interests: interests, Location: in.Location, Apartment: in.Apartment,
	}
	s.profiles[p.ID] = p
	return &p, nil
}

func (s *stubProfileService) List(ctx context.Context, userID uuid.UUID) ([]domain.Profile, error) {
	var out []domain.Profile
	for _, p := range s.profiles {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, s.err
}

func (s *stubProfileService) Get(ctx context.Context, userID, profileID uuid.UUID) (*domain.Profile, error) {
	p, ok := s.profiles[profileID]
	if !ok || p.UserID != userID {
		return nil, repository.ErrProfileNotFound
	}
	return &p, nil
}

func (s *stubProfileService) Update(ctx context.Context, userID, profileID uuid.UUID, in service.ProfileInput) (*domain.Profile, error) {
	p, ok := s.profiles[profileID]
	if !ok || p.UserID != userID {
		return nil, repository.ErrProfileNotFound
	}
	p.ChildName, p.Age, p.Grade, p.Board = in.ChildName, in.Age, in.Grade, in.Board
	p.Interests = domain.NewInterests(in.Interests...)
	s.profiles[profileID] = p
	return &p, nil
}

func sampleCatalog() ([]domain.Product, []domain.Service) {
	products := []domain.Product{
		{
			ID: uuid.New(), Name: "Robotics Starter Kit", Category: "STEM Toy", Price: 2499,
			Ages: domain.Range{Min: 8, Max: 14}, Grades: domain.Range{Min: 3, Max: 9},
			Interests: domain.ParseInterests("Science,Technology,Building"),
		},
		{
			ID: uuid.New(), Name: "Keyboard for Kids", Category: "STEM Toy", Price: 1999,
			Ages: domain.Range{Min: 8, Max: 14}, Grades: domain.Range{Min: 3, Max: 9},
			Interests: domain.ParseInterests("Music,Art"),
		},
	}
	services := []domain.Service{
		{
			ID: uuid.New(), Name: "Math Olympiad Coaching", TutorName: "Priya", Category: "Tutoring",
			Ages: domain.Range{Min: 8, Max: 14}, Rating: 4.8, Interests: domain.ParseInterests("Math"),
			Area: "Sholinganallur",
		},
		{
			ID: uuid.New(), Name: "Abacus Classes", TutorName: "Ravi", Category: "Tutoring",
			Ages: domain.Range{Min: 8, Max: 14}, Rating: 4.6, Interests: domain.ParseInterests("Math"),
			Area: "Chennai Central",
		},
	}
	return products, services
}

func newMatcher() *matcher.Matcher {
	return matcher.New(matcher.DefaultConfig())
}
