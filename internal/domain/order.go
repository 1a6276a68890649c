package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is a product line in a user's cart
type CartItem struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	ProductID uuid.UUID `db:"product_id"`
	Quantity  int       `db:"quantity"`
	AddedAt   time.Time `db:"added_at"`
}

// CartLine is a cart item joined with the product it refers to
type CartLine struct {
	CartItem
	Name        string
	Price       float64
	ImageURL    string
	Description string
}

// Total is the line price at the product's current price
func (l CartLine) Total() float64 {
	return l.Price * float64(l.Quantity)
}

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order is a checked-out cart
type Order struct {
	ID            uuid.UUID   `db:"id"`
	UserID        uuid.UUID   `db:"user_id"`
	TotalAmount   float64     `db:"total_amount"`
	Status        string      `db:"status"`
	PaymentMethod string      `db:"payment_method"`
	CreatedAt     time.Time   `db:"created_at"`
	Items         []OrderItem `db:"-"`
}

// OrderItem captures a product and its unit price at checkout time
type OrderItem struct {
	ID        uuid.UUID `db:"id"`
	OrderID   uuid.UUID `db:"order_id"`
	ProductID uuid.UUID `db:"product_id"`
	Quantity  int       `db:"quantity"`
	Price     float64   `db:"price"`
}

// OrderTotal sums price × quantity over the lines
func OrderTotal(lines []CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Total()
	}
	return total
}
