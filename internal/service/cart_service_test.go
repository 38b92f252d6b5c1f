package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manikantha-asam/ecommerce/internal/domain"
	"github.com/manikantha-asam/ecommerce/internal/repository"
)

func TestAddToCart_Success(t *testing.T) {
	products := &MockProductRepository{Products: map[int64]*domain.Product{
		1: {ID: 1, Name: "iPhone 15", Price: 99900, Category: domain.CategoryIphone},
	}}
	cart := &MockCartRepository{}
	svc := NewCartService(cart, products, testLogger())

	err := svc.AddToCart(context.Background(), domain.Identity{CustomerID: 7}, 1, 2)

	require.NoError(t, err)
	assert.Equal(t, int64(1), cart.AddedProductID)
	assert.Equal(t, int64(2), cart.AddedQuantity)
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	products := &MockProductRepository{Products: map[int64]*domain.Product{}}
	cart := &MockCartRepository{}
	svc := NewCartService(cart, products, testLogger())

	err := svc.AddToCart(context.Background(), domain.Identity{CustomerID: 7}, 42, 1)

	assert.ErrorIs(t, err, repository.ErrProductNotFound)
	assert.Zero(t, cart.AddedProductID)
}

func TestAddToCart_InvalidQuantity(t *testing.T) {
	products := &MockProductRepository{Products: map[int64]*domain.Product{
		1: {ID: 1, Name: "iPhone 15", Price: 99900, Category: domain.CategoryIphone},
	}}
	cart := &MockCartRepository{}
	svc := NewCartService(cart, products, testLogger())

	err := svc.AddToCart(context.Background(), domain.Identity{CustomerID: 7}, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	err = svc.AddToCart(context.Background(), domain.Identity{CustomerID: 7}, 1, -3)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestViewCart_ReturnsLines(t *testing.T) {
	lines := []*domain.CartLine{
		{ID: 1, Product: domain.Product{ID: 1, Name: "iPhone 15", Price: 99900}, Quantity: 2},
		{ID: 2, Product: domain.Product{ID: 2, Name: "AirPods Pro", Price: 100000}, Quantity: 1},
	}
	cart := &MockCartRepository{Lines: lines}
	svc := NewCartService(cart, &MockProductRepository{}, testLogger())

	got, err := svc.ViewCart(context.Background(), domain.Identity{CustomerID: 7})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(199800), got[0].LineTotal())
}

func TestViewCart_NoCart(t *testing.T) {
	cart := &MockCartRepository{GetErr: repository.ErrCartNotFound}
	svc := NewCartService(cart, &MockProductRepository{}, testLogger())

	_, err := svc.ViewCart(context.Background(), domain.Identity{CustomerID: 7})
	assert.ErrorIs(t, err, repository.ErrCartNotFound)
}

func TestUpdateItem_InvalidQuantity(t *testing.T) {
	cart := &MockCartRepository{}
	svc := NewCartService(cart, &MockProductRepository{}, testLogger())

	err := svc.UpdateItem(context.Background(), domain.Identity{CustomerID: 7}, 3, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Zero(t, cart.UpdatedItemID)
}

func TestUpdateItem_OtherCustomersItemMasked(t *testing.T) {
	cart := &MockCartRepository{UpdateErr: repository.ErrCartItemNotFound}
	svc := NewCartService(cart, &MockProductRepository{}, testLogger())

	err := svc.UpdateItem(context.Background(), domain.Identity{CustomerID: 8}, 3, 5)
	assert.ErrorIs(t, err, repository.ErrCartItemNotFound)
}

func TestDeleteItem_Success(t *testing.T) {
	cart := &MockCartRepository{}
	svc := NewCartService(cart, &MockProductRepository{}, testLogger())

	err := svc.DeleteItem(context.Background(), domain.Identity{CustomerID: 7}, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cart.DeletedItemID)
}
