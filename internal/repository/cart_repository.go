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
	ErrCartItemNotFound = errors.New("cart item not found")
)

// CartRepository defines the interface for cart data access
type CartRepository interface {
	// ListLines returns the user's cart joined with current product data, oldest first
	ListLines(ctx context.Context, userID uuid.UUID) ([]domain.CartLine, error)
	// AddOrIncrement inserts the product or adds quantity to an existing line
	AddOrIncrement(ctx context.Context, item *domain.CartItem) error
	Remove(ctx context.Context, userID, itemID uuid.UUID) error
}

type cartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new instance of CartRepository
func NewCartRepository(db *sql.DB) CartRepository {
	return &cartRepository{db: db}
}

const cartLinesQuery = `
	SELECT c.id, c.user_id, c.product_id, c.quantity, c.added_at,
	       p.name, p.price, p.image_url, p.description
	FROM cart_items c
	JOIN products p ON p.id = c.product_id
	WHERE c.user_id = $1
	ORDER BY c.added_at, c.id
`

func (r *cartRepository) ListLines(ctx context.Context, userID uuid.UUID) ([]domain.CartLine, error) {
	return queryCartLines(ctx, r.db, cartLinesQuery, userID)
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func queryCartLines(ctx context.Context, q queryer, query string, userID uuid.UUID) ([]domain.CartLine, error) {
	rows, err := q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	defer rows.Close()

	lines := make([]domain.CartLine, 0)
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(
			&line.ID,
			&line.UserID,
			&line.ProductID,
			&line.Quantity,
			&line.AddedAt,
			&line.Name,
			&line.Price,
			&line.ImageURL,
			&line.Description,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart: %w", err)
	}

	return lines, nil
}

// AddOrIncrement returns ErrProductNotFound when the product does not exist.
// On return item holds the stored line, including the merged quantity.
func (r *cartRepository) AddOrIncrement(ctx context.Context, item *domain.CartItem) error {
	query := `
		INSERT INTO cart_items (id, user_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, quantity, added_at
	`

	err := r.db.QueryRowContext(ctx, query, item.ID, item.UserID, item.ProductID, item.Quantity).
		Scan(&item.ID, &item.Quantity, &item.AddedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	return nil
}

func (r *cartRepository) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}
