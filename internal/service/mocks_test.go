package service

import (
	"context"
	"sync"

	"learnkart/internal/domain"
	"learnkart/internal/repository"

	"github.com/google/uuid"
)

// Mock repositories for testing

type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Email]; exists {
		return repository.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := m.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type mockRefreshTokenRepository struct {
	tokens map[string]*domain.RefreshToken
}

func newMockRefreshTokenRepository() *mockRefreshTokenRepository {
	return &mockRefreshTokenRepository{tokens: make(map[string]*domain.RefreshToken)}
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	m.tokens[token.Token] = token
	return nil
}

func (m *mockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return nil, repository.ErrRefreshTokenNotFound
	}
	if refreshToken.Revoked {
		return nil, repository.ErrRefreshTokenRevoked
	}
	return refreshToken, nil
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return repository.ErrRefreshTokenNotFound
	}
	refreshToken.Revoked = true
	return nil
}

type mockProfileRepository struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]domain.Profile
	err      error
}

func newMockProfileRepository(profiles ...domain.Profile) *mockProfileRepository {
	m := &mockProfileRepository{profiles: make(map[uuid.UUID]domain.Profile)}
	for _, p := range profiles {
		m.profiles[p.ID] = p
	}
	return m
}

func (m *mockProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.profiles[profile.ID] = *profile
	return nil
}

func (m *mockProfileRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Profile, 0)
	for _, p := range m.profiles {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, m.err
}

func (m *mockProfileRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.profiles[id]
	if !ok || p.UserID != userID {
		return nil, repository.ErrProfileNotFound
	}
	return &p, nil
}

func (m *mockProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[profile.ID]
	if !ok || p.UserID != profile.UserID {
		return repository.ErrProfileNotFound
	}
	m.profiles[profile.ID] = *profile
	return nil
}

type mockProductRepository struct {
	mu       sync.Mutex
	products []domain.Product
	err      error
	calls    int
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = append(m.products, *product)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return append([]domain.Product{}, m.products...), nil
}

type mockServiceRepository struct {
	mu       sync.Mutex
	services []domain.Service
	err      error
}

func (m *mockServiceRepository) Create(ctx context.Context, service *domain.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.services = append(m.services, *service)
	return nil
}

func (m *mockServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.services {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, repository.ErrServiceNotFound
}

func (m *mockServiceRepository) ListAll(ctx context.Context) ([]domain.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]domain.Service{}, m.services...), nil
}

type mockCartRepository struct {
	lines []domain.CartLine
	err   error
}

func (m *mockCartRepository) ListLines(ctx context.Context, userID uuid.UUID) ([]domain.CartLine, error) {
	out := make([]domain.CartLine, 0)
	for _, l := range m.lines {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, m.err
}

func (m *mockCartRepository) AddOrIncrement(ctx context.Context, item *domain.CartItem) error {
	if m.err != nil {
		return m.err
	}
	for i, l := range m.lines {
		if l.UserID == item.UserID && l.ProductID == item.ProductID {
			m.lines[i].Quantity += item.Quantity
			item.ID = l.ID
			item.Quantity = m.lines[i].Quantity
			return nil
		}
	}
	m.lines = append(m.lines, domain.CartLine{CartItem: *item})
	return nil
}

func (m *mockCartRepository) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	for i, l := range m.lines {
		if l.ID == itemID && l.UserID == userID {
			m.lines = append(m.lines[:i], m.lines[i+1:]...)
			return nil
		}
	}
	return repository.ErrCartItemNotFound
}

type mockOrderRepository struct {
	cart   *mockCartRepository
	orders []domain.Order
}

func (m *mockOrderRepository) Checkout(ctx context.Context, userID uuid.UUID, paymentMethod string) (*domain.Order, error) {
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
		order.Items = append(order.Items, domain.OrderItem{ID: uuid.New(), OrderID: order.ID, ProductID: l.ProductID, Quantity: l.Quantity, Price: l.Price})
		_ = m.cart.Remove(ctx, userID, l.ID)
	}
	m.orders = append(m.orders, order)
	return &order, nil
}

func (m *mockOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	out := make([]domain.Order, 0)
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

type mockBookingRepository struct {
	services map[uuid.UUID]bool
	bookings []domain.Booking
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if !m.services[booking.ServiceID] {
		return repository.ErrServiceNotFound
	}
	m.bookings = append(m.bookings, *booking)
	return nil
}

func (m *mockBookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.BookingDetail, error) {
	out := make([]domain.BookingDetail, 0)
	for _, b := range m.bookings {
		if b.UserID == userID {
			out = append(out, domain.BookingDetail{Booking: b})
		}
	}
	return out, nil
}
