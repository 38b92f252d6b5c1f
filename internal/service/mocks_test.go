package service

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/manikantha-asam/ecommerce/internal/cache"
	"github.com/manikantha-asam/ecommerce/internal/domain"
	"github.com/manikantha-asam/ecommerce/internal/events"
	"github.com/manikantha-asam/ecommerce/internal/notify"
	"github.com/manikantha-asam/ecommerce/internal/repository"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// MockProductRepository implements repository.ProductRepository for testing
type MockProductRepository struct {
	Products map[int64]*domain.Product
	ListErr  error
	GetErr   error
	SaveErr  error

	Created *domain.Product
	Updated *domain.Product
	Deleted int64
}

func (m *MockProductRepository) List(_ context.Context, _ repository.ProductFilter) ([]*domain.Product, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	products := make([]*domain.Product, 0, len(m.Products))
	for _, p := range m.Products {
		products = append(products, p)
	}
	return products, nil
}

func (m *MockProductRepository) Get(_ context.Context, id int64) (*domain.Product, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	p, ok := m.Products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (m *MockProductRepository) Create(_ context.Context, p *domain.Product) error {
	m.Created = p
	return m.SaveErr
}

func (m *MockProductRepository) Update(_ context.Context, p *domain.Product) error {
	m.Updated = p
	return m.SaveErr
}

func (m *MockProductRepository) Delete(_ context.Context, id int64) error {
	m.Deleted = id
	return m.SaveErr
}

// MockCustomerRepository implements repository.CustomerRepository for testing
type MockCustomerRepository struct {
	ByID       map[int64]*domain.Customer
	ByUsername map[string]*domain.Customer
	ByEmail    map[string]*domain.Customer

	CreateErr error
	UpdateErr error

	CreatedCustomer *domain.Customer
	UpdatedProfile  *domain.Customer
	PasswordOwner   int64
	PasswordHash    string
	LoginRecorded   int64
}

func (m *MockCustomerRepository) Create(_ context.Context, c *domain.Customer) error {
	m.CreatedCustomer = c
	return m.CreateErr
}

func (m *MockCustomerRepository) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	c, ok := m.ByID[id]
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}
	return c, nil
}

func (m *MockCustomerRepository) GetByUsername(_ context.Context, username string) (*domain.Customer, error) {
	c, ok := m.ByUsername[username]
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}
	return c, nil
}

func (m *MockCustomerRepository) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	c, ok := m.ByEmail[email]
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}
	return c, nil
}

func (m *MockCustomerRepository) UpdateProfile(_ context.Context, c *domain.Customer) error {
	m.UpdatedProfile = c
	return m.UpdateErr
}

func (m *MockCustomerRepository) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	m.PasswordOwner = id
	m.PasswordHash = passwordHash
	return m.UpdateErr
}

func (m *MockCustomerRepository) RecordLogin(_ context.Context, id int64, _ time.Time) error {
	m.LoginRecorded = id
	return nil
}

func (m *MockCustomerRepository) List(_ context.Context, _ string) ([]*domain.Customer, error) {
	customers := make([]*domain.Customer, 0, len(m.ByID))
	for _, c := range m.ByID {
		customers = append(customers, c)
	}
	return customers, nil
}

// MockCartRepository implements repository.CartRepository for testing
type MockCartRepository struct {
	Lines []*domain.CartLine

	AddErr    error
	GetErr    error
	UpdateErr error
	DeleteErr error

	AddedProductID int64
	AddedQuantity  int64
	UpdatedItemID  int64
	UpdatedQty     int64
	DeletedItemID  int64
}

func (m *MockCartRepository) AddItem(_ context.Context, _, productID, quantity int64) error {
	m.AddedProductID = productID
	m.AddedQuantity = quantity
	return m.AddErr
}

func (m *MockCartRepository) GetLines(_ context.Context, _ int64) ([]*domain.CartLine, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Lines, nil
}

func (m *MockCartRepository) UpdateItemQuantity(_ context.Context, _, itemID, quantity int64) error {
	m.UpdatedItemID = itemID
	m.UpdatedQty = quantity
	return m.UpdateErr
}

func (m *MockCartRepository) DeleteItem(_ context.Context, _, itemID int64) error {
	m.DeletedItemID = itemID
	return m.DeleteErr
}

// MockOrderRepository implements repository.OrderRepository for testing
type MockOrderRepository struct {
	PlacedOrder *domain.Order
	PlaceErr    error
	PlaceCalls  int

	Orders map[uuid.UUID]*domain.Order

	StatusErr     error
	StatusOrderID uuid.UUID
	StatusValue   domain.ShippingStatus
}

func (m *MockOrderRepository) PlaceOrder(_ context.Context, _ int64) (*domain.Order, error) {
	m.PlaceCalls++
	if m.PlaceErr != nil {
		return nil, m.PlaceErr
	}
	return m.PlacedOrder, nil
}

func (m *MockOrderRepository) Get(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	o, ok := m.Orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return o, nil
}

func (m *MockOrderRepository) ListByCustomer(_ context.Context, customerID int64) ([]*domain.Order, error) {
	var orders []*domain.Order
	for _, o := range m.Orders {
		if o.CustomerID == customerID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (m *MockOrderRepository) List(_ context.Context, _ repository.OrderFilter) ([]*domain.Order, error) {
	orders := make([]*domain.Order, 0, len(m.Orders))
	for _, o := range m.Orders {
		orders = append(orders, o)
	}
	return orders, nil
}

func (m *MockOrderRepository) UpdateShippingStatus(_ context.Context, id uuid.UUID, status domain.ShippingStatus) error {
	m.StatusOrderID = id
	m.StatusValue = status
	return m.StatusErr
}

// MockNotifier implements notify.Notifier for testing
type MockNotifier struct {
	ConfirmationErr error
	ResetErr        error
	ContactErr      error

	ConfirmationTo      string
	ConfirmationPayload notify.OrderConfirmation
	ResetTo             string
	ResetPayload        notify.PasswordReset
	ContactPayload      notify.ContactMessage
}

func (m *MockNotifier) SendOrderConfirmation(_ context.Context, to string, p notify.OrderConfirmation) error {
	m.ConfirmationTo = to
	m.ConfirmationPayload = p
	return m.ConfirmationErr
}

func (m *MockNotifier) SendPasswordReset(_ context.Context, to string, p notify.PasswordReset) error {
	m.ResetTo = to
	m.ResetPayload = p
	return m.ResetErr
}

func (m *MockNotifier) SendContactMessage(_ context.Context, p notify.ContactMessage) error {
	m.ContactPayload = p
	return m.ContactErr
}

// MockPublisher implements events.Publisher for testing
type MockPublisher struct {
	Err    error
	Events []events.OrderPlacedEvent
}

func (m *MockPublisher) PublishOrderPlaced(_ context.Context, event events.OrderPlacedEvent) error {
	m.Events = append(m.Events, event)
	return m.Err
}

// MockCatalogCache implements cache.CatalogCache for testing. The mutex
// matters because the catalog service repopulates the cache from a goroutine.
type MockCatalogCache struct {
	mu       sync.Mutex
	Products []*domain.Product
	GetErr   error
	SetErr   error

	SetCalls        int
	InvalidateCalls int
}

func (m *MockCatalogCache) GetProducts(_ context.Context) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Products, nil
}

func (m *MockCatalogCache) SetProducts(_ context.Context, products []*domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	m.Products = products
	return m.SetErr
}

func (m *MockCatalogCache) Invalidate(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InvalidateCalls++
	m.Products = nil
	return nil
}

func (m *MockCatalogCache) SetCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SetCalls
}

// MockTokenStore implements cache.TokenStore for testing
type MockTokenStore struct {
	Blacklisted map[string]bool
	ResetTokens map[string]int64

	SaveErr error
}

func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{
		Blacklisted: make(map[string]bool),
		ResetTokens: make(map[string]int64),
	}
}

func (m *MockTokenStore) BlacklistToken(_ context.Context, jti string, _ time.Duration) error {
	m.Blacklisted[jti] = true
	return nil
}

func (m *MockTokenStore) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	return m.Blacklisted[jti], nil
}

func (m *MockTokenStore) SaveResetToken(_ context.Context, token string, customerID int64, _ time.Duration) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.ResetTokens[token] = customerID
	return nil
}

func (m *MockTokenStore) ConsumeResetToken(_ context.Context, token string) (int64, error) {
	customerID, ok := m.ResetTokens[token]
	if !ok {
		return 0, cache.ErrTokenNotFound
	}
	delete(m.ResetTokens, token)
	return customerID, nil
}
