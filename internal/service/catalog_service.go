package service

import (
	"context"
	"errors"
	"fmt"

	"learnkart/internal/domain"
	"learnkart/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidRange  = errors.New("range minimum exceeds maximum")
	ErrInvalidRating = errors.New("rating must be between 0 and 5")
)

// CatalogService exposes the product and service listings
type CatalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) error

	ListServices(ctx context.Context) ([]domain.Service, error)
	GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	CreateService(ctx context.Context, service *domain.Service) error
}

type catalogService struct {
	productRepo repository.ProductRepository
	serviceRepo repository.ServiceRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(productRepo repository.ProductRepository, serviceRepo repository.ServiceRepository) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		serviceRepo: serviceRepo,
	}
}

func checkRange(r domain.Range) error {
	if r.Min > r.Max {
		return fmt.Errorf("%w: %d > %d", ErrInvalidRange, r.Min, r.Max)
	}
	return nil
}

func (s *catalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// CreateProduct assigns an id and normalizes the interest tags before storing
func (s *catalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := checkRange(product.Ages); err != nil {
		return err
	}
	if err := checkRange(product.Grades); err != nil {
		return err
	}

	product.ID = uuid.New()
	product.Interests = domain.NewInterests(product.Interests...)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (s *catalogService) ListServices(ctx context.Context) ([]domain.Service, error) {
	services, err := s.serviceRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (s *catalogService) GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	service, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return service, nil
}

func (s *catalogService) CreateService(ctx context.Context, service *domain.Service) error {
	if err := checkRange(service.Ages); err != nil {
		return err
	}
	if service.Rating < 0 || service.Rating > 5 {
		return ErrInvalidRating
	}

	service.ID = uuid.New()
	service.Interests = domain.NewInterests(service.Interests...)

	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}
