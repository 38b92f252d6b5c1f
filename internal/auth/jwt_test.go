package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manikantha-asam/ecommerce/internal/cache"
	"github.com/manikantha-asam/ecommerce/internal/domain"
)

// memoryTokenStore implements cache.TokenStore for testing
type memoryTokenStore struct {
	blacklisted map[string]bool
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{blacklisted: make(map[string]bool)}
}

func (s *memoryTokenStore) BlacklistToken(_ context.Context, jti string, _ time.Duration) error {
	s.blacklisted[jti] = true
	return nil
}

func (s *memoryTokenStore) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	return s.blacklisted[jti], nil
}

func (s *memoryTokenStore) SaveResetToken(_ context.Context, _ string, _ int64, _ time.Duration) error {
	return nil
}

func (s *memoryTokenStore) ConsumeResetToken(_ context.Context, _ string) (int64, error) {
	return 0, cache.ErrTokenNotFound
}

func testCustomer() *domain.Customer {
	return &domain.Customer{ID: 7, Username: "alice", IsStaff: false}
}

func TestIssuePair_AccessVerifies(t *testing.T) {
	m := NewManager([]byte("secret"), 30*time.Minute, 24*time.Hour, newMemoryTokenStore())

	pair, err := m.IssuePair(testCustomer())
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	identity, err := m.VerifyAccess(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, int64(7), identity.CustomerID)
	assert.Equal(t, "alice", identity.Username)
	assert.False(t, identity.IsStaff)
}

func TestVerifyAccess_RejectsRefreshToken(t *testing.T) {
	m := NewManager([]byte("secret"), 30*time.Minute, 24*time.Hour, newMemoryTokenStore())

	pair, err := m.IssuePair(testCustomer())
	require.NoError(t, err)

	// token types are not interchangeable
	_, err = m.VerifyAccess(pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccess_WrongSecret(t *testing.T) {
	m1 := NewManager([]byte("secret-one"), 30*time.Minute, 24*time.Hour, newMemoryTokenStore())
	m2 := NewManager([]byte("secret-two"), 30*time.Minute, 24*time.Hour, newMemoryTokenStore())

	pair, err := m1.IssuePair(testCustomer())
	require.NoError(t, err)

	_, err = m2.VerifyAccess(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccess_Expired(t *testing.T) {
	m := NewManager([]byte("secret"), -time.Minute, 24*time.Hour, newMemoryTokenStore())

	pair, err := m.IssuePair(testCustomer())
	require.NoError(t, err)

	_, err = m.VerifyAccess(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccess_Garbage(t *testing.T) {
	m := NewManager([]byte("secret"), 30*time.Minute, 24*time.Hour, newMemoryTokenStore())

	_, err := m.VerifyAccess("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefresh_IssuesNewAccess(t *testing.T) {
	m := NewManager([]byte("secret"), 30*time.Minute, 24*time.Hour, newMemoryTokenStore())

	staff := &domain.Customer{ID: 1, Username: "admin", IsStaff: true}
	pair, err := m.IssuePair(staff)
	require.NoError(t, err)

	access, err := m.Refresh(context.Background(), pair.Refresh)
	require.NoError(t, err)

	// staff flag survives the refresh round trip
	identity, err := m.VerifyAccess(access)
	require.NoError(t, err)
	assert.True(t, identity.IsStaff)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	m := NewManager([]byte("secret"), 30*time.Minute, 24*time.Hour, newMemoryTokenStore())

	pair, err := m.IssuePair(testCustomer())
	require.NoError(t, err)

	_, err = m.Refresh(context.Background(), pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevoke_BlocksRefresh(t *testing.T) {
	m := NewManager([]byte("secret"), 30*time.Minute, 24*time.Hour, newMemoryTokenStore())

	pair, err := m.IssuePair(testCustomer())
	require.NoError(t, err)

	require.NoError(t, m.Revoke(context.Background(), pair.Refresh))

	_, err = m.Refresh(context.Background(), pair.Refresh)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestRevoke_OtherTokensUnaffected(t *testing.T) {
	m := NewManager([]byte("secret"), 30*time.Minute, 24*time.Hour, newMemoryTokenStore())

	pair1, err := m.IssuePair(testCustomer())
	require.NoError(t, err)
	pair2, err := m.IssuePair(testCustomer())
	require.NoError(t, err)

	require.NoError(t, m.Revoke(context.Background(), pair1.Refresh))

	_, err = m.Refresh(context.Background(), pair2.Refresh)
	assert.NoError(t, err)
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("supersecret1")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret1", hash)

	assert.True(t, CheckPassword(hash, "supersecret1"))
	assert.False(t, CheckPassword(hash, "wrongpassword"))
}
