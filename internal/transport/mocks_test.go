package transport

import (
	"context"
	"errors"

	"learnkart/internal/domain"
	"learnkart/internal/repository"

	"github.com/google/uuid"
)

var errStoreDown = errors.New("connection refused")

type memoryProfiles struct {
	profiles map[uuid.UUID]domain.Profile
}

func (m *memoryProfiles) Create(ctx context.Context, profile *domain.Profile) error {
	m.profiles[profile.ID] = *profile
	return nil
}

func (m *memoryProfiles) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Profile, error) {
	var out []domain.Profile
	for _, p := range m.profiles {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryProfiles) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Profile, error) {
	p, ok := m.profiles[id]
	if !ok || p.UserID != userID {
		return nil, repository.ErrProfileNotFound
	}
	return &p, nil
}

func (m *memoryProfiles) Update(ctx context.Context, profile *domain.Profile) error {
	if _, err := m.FindByIDForUser(ctx, profile.ID, profile.UserID); err != nil {
		return err
	}
	m.profiles[profile.ID] = *profile
	return nil
}

type memoryProducts struct {
	products []domain.Product
	err      error
}

func (m *memoryProducts) Create(ctx context.Context, product *domain.Product) error {
	m.products = append(m.products, *product)
	return nil
}

func (m *memoryProducts) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *memoryProducts) ListAll(ctx context.Context) ([]domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]domain.Product{}, m.products...), nil
}

type memoryServices struct {
	services []domain.Service
	err      error
}

func (m *memoryServices) Create(ctx context.Context, service *domain.Service) error {
	m.services = append(m.services, *service)
	return nil
}

func (m *memoryServices) FindByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	for _, s := range m.services {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, repository.ErrServiceNotFound
}

func (m *memoryServices) ListAll(ctx context.Context) ([]domain.Service, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]domain.Service{}, m.services...), nil
}

// memoryCart prices lines from the product store the way the cart join does
type memoryCart struct {
	products *memoryProducts
	items    []domain.CartItem
}

func (m *memoryCart) ListLines(ctx context.Context, userID uuid.UUID) ([]domain.CartLine, error) {
	var out []domain.CartLine
	for _, it := range m.items {
		if it.UserID != userID {
			continue
		}
		p, err := m.products.FindByID(ctx, it.ProductID)
		if err != nil {
			continue
		}
		out = append(out, domain.CartLine{
			CartItem: it, Name: p.Name, Price: p.Price, ImageURL: p.ImageURL, Description: p.Description,
		})
	}
	return out, nil
}

func (m *memoryCart) AddOrIncrement(ctx context.Context, item *domain.CartItem) error {
	if _, err := m.products.FindByID(ctx, item.ProductID); err != nil {
		return err
	}
	for i, it := range m.items {
		if it.UserID == item.UserID && it.ProductID == item.ProductID {
			m.items[i].Quantity += item.Quantity
			*item = m.items[i]
			return nil
		}
	}
	m.items = append(m.items, *item)
	return nil
}

func (m *memoryCart) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	for i, it := range m.items {
		if it.ID == itemID && it.UserID == userID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrCartItemNotFound
}

type memoryOrders struct {
	cart   *memoryCart
	orders []domain.Order
}

func (m *memoryOrders) Checkout(ctx context.Context, userID uuid.UUID, paymentMethod string) (*domain.Order, error) {
	lines, _ := m.cart.ListLines(ctx, userID)
	if len(lines) == 0 {
		return nil, repository.ErrCartEmpty
	}

	order := domain.Order{
		ID:            uuid.New(),
		UserID:        userID,
		TotalAmount:   domain.OrderTotal(lines),
		Status:        domain.OrderStatusCompleted,
		PaymentMethod: paymentMethod,
	}
	for _, l := range lines {
		order.Items = append(order.Items, domain.OrderItem{
			ID: uuid.New(), OrderID: order.ID, ProductID: l.ProductID, Quantity: l.Quantity, Price: l.Price,
		})
		_ = m.cart.Remove(ctx, userID, l.ID)
	}
	m.orders = append([]domain.Order{order}, m.orders...)
	return &order, nil
}

func (m *memoryOrders) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

type memoryBookings struct {
	services *memoryServices
	bookings []domain.Booking
}

func (m *memoryBookings) Create(ctx context.Context, booking *domain.Booking) error {
	if _, err := m.services.FindByID(ctx, booking.ServiceID); err != nil {
		return err
	}
	m.bookings = append(m.bookings, *booking)
	return nil
}

func (m *memoryBookings) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.BookingDetail, error) {
	var out []domain.BookingDetail
	for i := len(m.bookings) - 1; i >= 0; i-- {
		b := m.bookings[i]
		if b.UserID != userID {
			continue
		}
		s, _ := m.services.FindByID(ctx, b.ServiceID)
		out = append(out, domain.BookingDetail{
			Booking: b, ServiceName: s.Name, TutorName: s.TutorName, Address: s.Address, Price: s.Price,
		})
	}
	return out, nil
}
