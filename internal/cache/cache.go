package cache

import (
	"context"
	"errors"
	"time"

	"github.com/manikantha-asam/ecommerce/internal/domain"
)

var (
	ErrCacheMiss     = errors.New("cache miss")
	ErrTokenNotFound = errors.New("token not found")
)

// CatalogCache holds the unfiltered product list. Filtered listings always
// go to the database; admin writes invalidate the cached list.
type CatalogCache interface {
	GetProducts(ctx context.Context) ([]*domain.Product, error)
	SetProducts(ctx context.Context, products []*domain.Product) error
	Invalidate(ctx context.Context) error
}

// TokenStore backs the two expiring-token concerns: the refresh-token
// blacklist written at logout, and single-use password-reset tokens.
type TokenStore interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
	SaveResetToken(ctx context.Context, token string, customerID int64, ttl time.Duration) error
	// ConsumeResetToken returns the owning customer and deletes the token,
	// so a reset link works exactly once.
	ConsumeResetToken(ctx context.Context, token string) (int64, error)
}
