package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"learnkart/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

// ProfileRepository stores child profiles. Every lookup is scoped to the owning user.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Profile, error)
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new instance of ProfileRepository
func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, user_id, child_name, age, grade, board, interests, location, apartment, created_at, updated_at`

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (id, user_id, child_name, age, grade, board, interests, location, apartment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		profile.ID,
		profile.UserID,
		profile.ChildName,
		profile.Age,
		profile.Grade,
		profile.Board,
		profile.Interests,
		profile.Location,
		profile.Apartment,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

func (r *profileRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]domain.Profile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, *profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}

	return profiles, nil
}

// FindByIDForUser returns ErrProfileNotFound both for unknown ids and for
// profiles owned by someone else
func (r *profileRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1 AND user_id = $2`

	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	return profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET child_name = $3, age = $4, grade = $5, board = $6, interests = $7,
		    location = $8, apartment = $9
		WHERE id = $1 AND user_id = $2
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		profile.ID,
		profile.UserID,
		profile.ChildName,
		profile.Age,
		profile.Grade,
		profile.Board,
		profile.Interests,
		profile.Location,
		profile.Apartment,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return nil
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	profile := &domain.Profile{}
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.ChildName,
		&profile.Age,
		&profile.Grade,
		&profile.Board,
		&profile.Interests,
		&profile.Location,
		&profile.Apartment,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return profile, nil
}
