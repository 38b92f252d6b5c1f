package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/manikantha-asam/ecommerce/internal/auth"
	"github.com/manikantha-asam/ecommerce/internal/cache"
	"github.com/manikantha-asam/ecommerce/internal/domain"
	"github.com/manikantha-asam/ecommerce/internal/service"
)

// catalogCacheMock implements cache.CatalogCache
type catalogCacheMock struct{}

func (catalogCacheMock) GetProducts(_ context.Context) ([]*domain.Product, error) {
	return nil, cache.ErrCacheMiss
}

func (catalogCacheMock) SetProducts(_ context.Context, _ []*domain.Product) error { return nil }

func (catalogCacheMock) Invalidate(_ context.Context) error { return nil }

func newTestRouter(manager *auth.Manager) http.Handler {
	logger := testLogger()
	catalog := service.NewCatalogService(&productRepoMock{products: map[int64]*domain.Product{}}, catalogCacheMock{}, logger)
	accounts := service.NewAccountService(&customerRepoMock{}, manager, newTokenStoreMock(), &notifierMock{}, logger, "http://localhost:3000")
	carts := service.NewCartService(&cartRepoMock{}, &productRepoMock{products: map[int64]*domain.Product{}}, logger)
	orders := service.NewOrderService(&orderRepoMock{}, &customerRepoMock{}, &notifierMock{}, nil, logger)

	return NewRouter(Handlers{
		Products: NewProductHandler(catalog),
		Accounts: NewAccountHandler(accounts),
		Cart:     NewCartHandler(carts),
		Orders:   NewOrderHandler(orders),
		Contact:  NewContactHandler(&notifierMock{}),
		Tokens:   manager,
	}, 30*time.Second)
}

func TestRouter_LogoutRequiresBearerToken(t *testing.T) {
	router := newTestRouter(newTestManager())

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/logout", strings.NewReader(`{"refresh":"whatever"}`))
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("Expected status code %d, got %d", http.StatusUnauthorized, recorder.Code)
	}
}

func TestRouter_LogoutWithBearerToken(t *testing.T) {
	manager := newTestManager()
	router := newTestRouter(manager)

	pair, err := manager.IssuePair(&domain.Customer{ID: 7, Username: "alice"})
	if err != nil {
		t.Fatalf("Failed to issue pair: %v", err)
	}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/logout", strings.NewReader(`{"refresh":"`+pair.Refresh+`"}`))
	request.Header.Set("Authorization", "Bearer "+pair.Access)
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusResetContent {
		t.Errorf("Expected status code %d, got %d", http.StatusResetContent, recorder.Code)
	}
}
