package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"learnkart/internal/domain"
	"learnkart/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrNoInterests = errors.New("at least one non-blank interest is required")
)

// ProfileInput carries the editable fields of a child profile
type ProfileInput struct {
	ChildName string
	Age       int
	Grade     int
	Board     string
	Interests []string
	Location  string
	Apartment string
}

// ProfileService manages the child profiles owned by a parent
type ProfileService interface {
	Create(ctx context.Context, userID uuid.UUID, in ProfileInput) (*domain.Profile, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Profile, error)
	Get(ctx context.Context, userID, profileID uuid.UUID) (*domain.Profile, error)
	Update(ctx context.Context, userID, profileID uuid.UUID, in ProfileInput) (*domain.Profile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new instance of ProfileService
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

// apply copies normalized input onto p
func (in ProfileInput) apply(p *domain.Profile) error {
	interests := domain.NewInterests(in.Interests...)
	if interests.IsEmpty() {
		return ErrNoInterests
	}

	p.ChildName = strings.TrimSpace(in.ChildName)
	p.Age = in.Age
	p.Grade = in.Grade
	p.Board = strings.TrimSpace(in.Board)
	p.Interests = interests
	p.Location = strings.TrimSpace(in.Location)
	p.Apartment = strings.TrimSpace(in.Apartment)
	return nil
}

func (s *profileService) Create(ctx context.Context, userID uuid.UUID, in ProfileInput) (*domain.Profile, error) {
	profile := &domain.Profile{ID: uuid.New(), UserID: userID}
	if err := in.apply(profile); err != nil {
		return nil, err
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}

func (s *profileService) List(ctx context.Context, userID uuid.UUID) ([]domain.Profile, error) {
	profiles, err := s.profileRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

func (s *profileService) Get(ctx context.Context, userID, profileID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindByIDForUser(ctx, profileID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) Update(ctx context.Context, userID, profileID uuid.UUID, in ProfileInput) (*domain.Profile, error) {
	profile := &domain.Profile{ID: profileID, UserID: userID}
	if err := in.apply(profile); err != nil {
		return nil, err
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return profile, nil
}
