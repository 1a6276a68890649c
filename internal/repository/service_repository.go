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
	ErrServiceNotFound = errors.New("service not found")
)

// ServiceRepository gives access to the tutoring and class listings
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	ListAll(ctx context.Context) ([]domain.Service, error)
}

type serviceRepository struct {
	db *sql.DB
}

// NewServiceRepository creates a new instance of ServiceRepository
func NewServiceRepository(db *sql.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

const serviceColumns = `id, name, tutor_name, category, description, price, age_min, age_max,
	location, address, rating, reviews_count, interests, experience, qualifications, area,
	created_at, updated_at`

func (r *serviceRepository) Create(ctx context.Context, service *domain.Service) error {
	query := `
		INSERT INTO services (id, name, tutor_name, category, description, price, age_min, age_max,
			location, address, rating, reviews_count, interests, experience, qualifications, area)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		service.ID,
		service.Name,
		service.TutorName,
		service.Category,
		service.Description,
		service.Price,
		service.Ages.Min,
		service.Ages.Max,
		service.Location,
		service.Address,
		service.Rating,
		service.ReviewsCount,
		service.Interests,
		service.Experience,
		service.Qualifications,
		sql.NullString{String: service.Area, Valid: service.Area != ""},
	).Scan(&service.CreatedAt, &service.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	return nil
}

func (r *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`

	service, err := scanService(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to find service: %w", err)
	}

	return service, nil
}

func (r *serviceRepository) ListAll(ctx context.Context) ([]domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, *service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating services: %w", err)
	}

	return services, nil
}

func scanService(row rowScanner) (*domain.Service, error) {
	service := &domain.Service{}
	var area sql.NullString

	err := row.Scan(
		&service.ID,
		&service.Name,
		&service.TutorName,
		&service.Category,
		&service.Description,
		&service.Price,
		&service.Ages.Min,
		&service.Ages.Max,
		&service.Location,
		&service.Address,
		&service.Rating,
		&service.ReviewsCount,
		&service.Interests,
		&service.Experience,
		&service.Qualifications,
		&area,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	service.Area = area.String
	return service, nil
}
