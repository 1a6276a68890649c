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
	ErrCartEmpty = errors.New("cart is empty")
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	// Checkout converts the user's cart into a completed order in one transaction
	Checkout(ctx context.Context, userID uuid.UUID, paymentMethod string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Checkout(ctx context.Context, userID uuid.UUID, paymentMethod string) (*domain.Order, error) {
	var order *domain.Order

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		lines, err := queryCartLines(ctx, tx, cartLinesQuery+` FOR UPDATE OF c`, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrCartEmpty
		}

		order = &domain.Order{
			ID:            uuid.New(),
			UserID:        userID,
			TotalAmount:   domain.OrderTotal(lines),
			Status:        domain.OrderStatusCompleted,
			PaymentMethod: paymentMethod,
			Items:         make([]domain.OrderItem, 0, len(lines)),
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO orders (id, user_id, total_amount, status, payment_method)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at
		`, order.ID, order.UserID, order.TotalAmount, order.Status, order.PaymentMethod).Scan(&order.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, line := range lines {
			item := domain.OrderItem{
				ID:        uuid.New(),
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     line.Price,
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO order_items (id, order_id, product_id, quantity, price)
				VALUES ($1, $2, $3, $4, $5)
			`, item.ID, item.OrderID, item.ProductID, item.Quantity, item.Price); err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			order.Items = append(order.Items, item)
		}

		return removeCartLines(ctx, tx, userID, lines)
	})
	if err != nil {
		if errors.Is(err, ErrCartEmpty) {
			return nil, err
		}
		return nil, fmt.Errorf("checkout failed: %w", err)
	}

	return order, nil
}

// removeCartLines deletes only the given lines. Lines added after they were
// read stay in the cart for the next checkout.
func removeCartLines(ctx context.Context, tx *sql.Tx, userID uuid.UUID, lines []domain.CartLine) error {
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ID.String())
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND id = ANY($2::uuid[])`,
		userID, ids,
	); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// ListByUser returns the user's orders newest first, each with its items
func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	query := `
		SELECT o.id, o.user_id, o.total_amount, o.status, o.payment_method, o.created_at,
		       i.id, i.product_id, i.quantity, i.price
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.id, i.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var (
			o         domain.Order
			itemID    uuid.NullUUID
			productID uuid.NullUUID
			quantity  sql.NullInt64
			price     sql.NullFloat64
		)
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.PaymentMethod, &o.CreatedAt,
			&itemID, &productID, &quantity, &price,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		if n := len(orders); n == 0 || orders[n-1].ID != o.ID {
			o.Items = make([]domain.OrderItem, 0)
			orders = append(orders, o)
		}

		if itemID.Valid {
			last := &orders[len(orders)-1]
			last.Items = append(last.Items, domain.OrderItem{
				ID:        itemID.UUID,
				OrderID:   o.ID,
				ProductID: productID.UUID,
				Quantity:  int(quantity.Int64),
				Price:     price.Float64,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}
