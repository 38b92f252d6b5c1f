package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/manikantha-asam/ecommerce/internal/domain"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrProductInUse     = errors.New("product is referenced by existing orders")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrEmailTaken       = errors.New("email already taken")
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartEmpty        = errors.New("cart is empty")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrOrderNotFound    = errors.New("order not found")
)

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

// ProductFilter narrows product listings. Zero values mean "no filter".
type ProductFilter struct {
	Category domain.Category
	Search   string // matches name, description, category
}

// OrderFilter narrows the staff-only order listing.
type OrderFilter struct {
	Status      domain.ShippingStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Search      string // matches owner username and order id
}

type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByUsername(ctx context.Context, username string) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	UpdateProfile(ctx context.Context, c *domain.Customer) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	RecordLogin(ctx context.Context, id int64, at time.Time) error
	List(ctx context.Context, search string) ([]*domain.Customer, error)
}

type CartRepository interface {
	// AddItem creates the customer's cart on first use and upserts the
	// (cart, product) line: a new line gets the requested quantity, an
	// existing one is incremented by it.
	AddItem(ctx context.Context, customerID, productID, quantity int64) error
	GetLines(ctx context.Context, customerID int64) ([]*domain.CartLine, error)
	UpdateItemQuantity(ctx context.Context, customerID, itemID, quantity int64) error
	DeleteItem(ctx context.Context, customerID, itemID int64) error
}

type OrderRepository interface {
	// PlaceOrder runs the cart-to-order transition in one transaction:
	// snapshot cart lines, insert the order and its items with prices
	// captured from the current product rows, delete the cart lines.
	PlaceOrder(ctx context.Context, customerID int64) (*domain.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*domain.Order, error)
	UpdateShippingStatus(ctx context.Context, id uuid.UUID, status domain.ShippingStatus) error
}
