package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/manikantha-asam/ecommerce/internal/cache"
	"github.com/manikantha-asam/ecommerce/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrTokenRevoked = errors.New("token has been revoked")
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type Claims struct {
	jwt.RegisteredClaims
	CustomerID int64  `json:"customer_id"`
	Username   string `json:"username"`
	IsStaff    bool   `json:"is_staff"`
	TokenType  string `json:"token_type"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Manager signs and verifies the bearer-token pair. Refresh tokens carry a
// jti so logout can revoke them through the blacklist in the token store.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	store      cache.TokenStore
}

func NewManager(secret []byte, accessTTL, refreshTTL time.Duration, store cache.TokenStore) *Manager {
	return &Manager{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		store:      store,
	}
}

func (m *Manager) IssuePair(c *domain.Customer) (*TokenPair, error) {
	access, err := m.sign(c, tokenTypeAccess, m.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := m.sign(c, tokenTypeRefresh, m.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (m *Manager) sign(c *domain.Customer, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   c.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		CustomerID: c.ID,
		Username:   c.Username,
		IsStaff:    c.IsStaff,
		TokenType:  tokenType,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) parse(tokenString, wantType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyAccess validates an access token and returns the caller identity.
func (m *Manager) VerifyAccess(tokenString string) (*domain.Identity, error) {
	claims, err := m.parse(tokenString, tokenTypeAccess)
	if err != nil {
		return nil, err
	}
	return &domain.Identity{
		CustomerID: claims.CustomerID,
		Username:   claims.Username,
		IsStaff:    claims.IsStaff,
	}, nil
}

// Refresh exchanges a valid, unrevoked refresh token for a new access token.
func (m *Manager) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := m.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return "", err
	}

	revoked, err := m.store.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return "", fmt.Errorf("check blacklist: %w", err)
	}
	if revoked {
		return "", ErrTokenRevoked
	}

	c := &domain.Customer{
		ID:       claims.CustomerID,
		Username: claims.Username,
		IsStaff:  claims.IsStaff,
	}
	access, err := m.sign(c, tokenTypeAccess, m.accessTTL)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return access, nil
}

// Revoke blacklists a refresh token for the remainder of its lifetime.
func (m *Manager) Revoke(ctx context.Context, refreshToken string) error {
	claims, err := m.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return err
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := m.store.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}
