package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/manikantha-asam/ecommerce/internal/cache"
	"github.com/manikantha-asam/ecommerce/internal/domain"
	"github.com/manikantha-asam/ecommerce/internal/notify"
	"github.com/manikantha-asam/ecommerce/internal/repository"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// withIdentity injects an authenticated caller, bypassing the middleware.
func withIdentity(r *http.Request, identity domain.Identity) *http.Request {
	ctx := context.WithValue(r.Context(), identityKey, identity)
	return r.WithContext(ctx)
}

// productRepoMock implements repository.ProductRepository
type productRepoMock struct {
	products map[int64]*domain.Product
}

func (m *productRepoMock) List(_ context.Context, _ repository.ProductFilter) ([]*domain.Product, error) {
	products := make([]*domain.Product, 0, len(m.products))
	for _, p := range m.products {
		products = append(products, p)
	}
	return products, nil
}

func (m *productRepoMock) Get(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (m *productRepoMock) Create(_ context.Context, p *domain.Product) error {
	p.ID = int64(len(m.products) + 1)
	m.products[p.ID] = p
	return nil
}

func (m *productRepoMock) Update(_ context.Context, p *domain.Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return repository.ErrProductNotFound
	}
	m.products[p.ID] = p
	return nil
}

func (m *productRepoMock) Delete(_ context.Context, id int64) error {
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

// cartRepoMock implements repository.CartRepository
type cartRepoMock struct {
	lines     []*domain.CartLine
	getErr    error
	updateErr error
	deleteErr error

	addedProductID int64
	addedQuantity  int64
}

func (m *cartRepoMock) AddItem(_ context.Context, _, productID, quantity int64) error {
	m.addedProductID = productID
	m.addedQuantity = quantity
	return nil
}

func (m *cartRepoMock) GetLines(_ context.Context, _ int64) ([]*domain.CartLine, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.lines, nil
}

func (m *cartRepoMock) UpdateItemQuantity(_ context.Context, _, _, _ int64) error {
	return m.updateErr
}

func (m *cartRepoMock) DeleteItem(_ context.Context, _, _ int64) error {
	return m.deleteErr
}

// orderRepoMock implements repository.OrderRepository
type orderRepoMock struct {
	placed   *domain.Order
	placeErr error
	orders   map[uuid.UUID]*domain.Order

	statusErr error
}

func (m *orderRepoMock) PlaceOrder(_ context.Context, _ int64) (*domain.Order, error) {
	if m.placeErr != nil {
		return nil, m.placeErr
	}
	return m.placed, nil
}

func (m *orderRepoMock) Get(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return o, nil
}

func (m *orderRepoMock) ListByCustomer(_ context.Context, customerID int64) ([]*domain.Order, error) {
	var orders []*domain.Order
	for _, o := range m.orders {
		if o.CustomerID == customerID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (m *orderRepoMock) List(_ context.Context, _ repository.OrderFilter) ([]*domain.Order, error) {
	orders := make([]*domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		orders = append(orders, o)
	}
	return orders, nil
}

func (m *orderRepoMock) UpdateShippingStatus(_ context.Context, _ uuid.UUID, _ domain.ShippingStatus) error {
	return m.statusErr
}

// customerRepoMock implements repository.CustomerRepository
type customerRepoMock struct {
	byID map[int64]*domain.Customer
}

func (m *customerRepoMock) Create(_ context.Context, _ *domain.Customer) error { return nil }

func (m *customerRepoMock) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}
	return c, nil
}

func (m *customerRepoMock) GetByUsername(_ context.Context, _ string) (*domain.Customer, error) {
	return nil, repository.ErrCustomerNotFound
}

func (m *customerRepoMock) GetByEmail(_ context.Context, _ string) (*domain.Customer, error) {
	return nil, repository.ErrCustomerNotFound
}

func (m *customerRepoMock) UpdateProfile(_ context.Context, _ *domain.Customer) error { return nil }

func (m *customerRepoMock) UpdatePassword(_ context.Context, _ int64, _ string) error { return nil }

func (m *customerRepoMock) RecordLogin(_ context.Context, _ int64, _ time.Time) error { return nil }

func (m *customerRepoMock) List(_ context.Context, _ string) ([]*domain.Customer, error) {
	return nil, nil
}

// notifierMock implements notify.Notifier
type notifierMock struct {
	confirmationErr error
	contactErr      error

	contactMessage notify.ContactMessage
}

func (m *notifierMock) SendOrderConfirmation(_ context.Context, _ string, _ notify.OrderConfirmation) error {
	return m.confirmationErr
}

func (m *notifierMock) SendPasswordReset(_ context.Context, _ string, _ notify.PasswordReset) error {
	return nil
}

func (m *notifierMock) SendContactMessage(_ context.Context, p notify.ContactMessage) error {
	m.contactMessage = p
	return m.contactErr
}

// tokenStoreMock implements cache.TokenStore
type tokenStoreMock struct {
	blacklisted map[string]bool
}

func newTokenStoreMock() *tokenStoreMock {
	return &tokenStoreMock{blacklisted: make(map[string]bool)}
}

func (s *tokenStoreMock) BlacklistToken(_ context.Context, jti string, _ time.Duration) error {
	s.blacklisted[jti] = true
	return nil
}

func (s *tokenStoreMock) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	return s.blacklisted[jti], nil
}

func (s *tokenStoreMock) SaveResetToken(_ context.Context, _ string, _ int64, _ time.Duration) error {
	return nil
}

func (s *tokenStoreMock) ConsumeResetToken(_ context.Context, _ string) (int64, error) {
	return 0, cache.ErrTokenNotFound
}
