package service

import (
	"context"
	"errors"
	"fmt"

	"learnkart/internal/domain"
	"learnkart/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// CartService manages a parent's cart and turns it into orders
type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) ([]domain.CartLine, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*domain.CartItem, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error
	Checkout(ctx context.Context, userID uuid.UUID, paymentMethod string) (*domain.Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
}

type cartService struct {
	cartRepo  repository.CartRepository
	orderRepo repository.OrderRepository
	logger    *zap.Logger
}

// NewCartService creates a new instance of CartService
func NewCartService(cartRepo repository.CartRepository, orderRepo repository.OrderRepository, logger *zap.Logger) CartService {
	return &cartService{
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) ([]domain.CartLine, error) {
	lines, err := s.cartRepo.ListLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return lines, nil
}

// AddItem returns repository.ErrProductNotFound for unknown products
func (s *cartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*domain.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item := &domain.CartItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.AddOrIncrement(ctx, item); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	return item, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if err := s.cartRepo.Remove(ctx, userID, itemID); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return err
		}
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

// Checkout returns repository.ErrCartEmpty when there is nothing to buy
func (s *cartService) Checkout(ctx context.Context, userID uuid.UUID, paymentMethod string) (*domain.Order, error) {
	order, err := s.orderRepo.Checkout(ctx, userID, paymentMethod)
	if err != nil {
		if errors.Is(err, repository.ErrCartEmpty) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to checkout: %w", err)
	}

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("items", len(order.Items)),
		zap.Float64("total", order.TotalAmount),
	)

	return order, nil
}

func (s *cartService) ListOrders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
