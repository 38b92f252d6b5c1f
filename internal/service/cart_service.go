package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/manikantha-asam/ecommerce/internal/domain"
	"github.com/manikantha-asam/ecommerce/internal/repository"
)

// CartService manages the single active cart per customer. Ownership is
// enforced in the repository queries: items of other customers' carts are
// reported as not found, never as forbidden.
type CartService struct {
	cart     repository.CartRepository
	products repository.ProductRepository
	logger   *logrus.Logger
}

func NewCartService(cart repository.CartRepository, products repository.ProductRepository, logger *logrus.Logger) *CartService {
	return &CartService{
		cart:     cart,
		products: products,
		logger:   logger,
	}
}

// AddToCart creates the (cart, product) line with the requested quantity, or
// increments the existing line by it.
func (s *CartService) AddToCart(ctx context.Context, caller domain.Identity, productID, quantity int64) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if _, err := s.products.Get(ctx, productID); err != nil {
		return err
	}
	if err := s.cart.AddItem(ctx, caller.CustomerID, productID, quantity); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"customer_id": caller.CustomerID,
		"product_id":  productID,
		"quantity":    quantity,
	}).Info("product added to cart")
	return nil
}

func (s *CartService) ViewCart(ctx context.Context, caller domain.Identity) ([]*domain.CartLine, error) {
	return s.cart.GetLines(ctx, caller.CustomerID)
}

func (s *CartService) UpdateItem(ctx context.Context, caller domain.Identity, itemID, quantity int64) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return s.cart.UpdateItemQuantity(ctx, caller.CustomerID, itemID, quantity)
}

func (s *CartService) DeleteItem(ctx context.Context, caller domain.Identity, itemID int64) error {
	return s.cart.DeleteItem(ctx, caller.CustomerID, itemID)
}
