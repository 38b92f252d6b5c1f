package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/manikantha-asam/ecommerce/internal/domain"
	"github.com/manikantha-asam/ecommerce/internal/events"
	"github.com/manikantha-asam/ecommerce/internal/notify"
	"github.com/manikantha-asam/ecommerce/internal/repository"
)

// OrderService owns the cart-to-order transition and order queries. A
// per-customer singleflight group collapses concurrent double-submits of
// PlaceOrder: both callers observe the one placement.
type OrderService struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	notifier  notify.Notifier
	publisher events.Publisher
	logger    *logrus.Logger
	sfg       singleflight.Group
}

func NewOrderService(
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	notifier notify.Notifier,
	publisher events.Publisher,
	logger *logrus.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		customers: customers,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
	}
}

// PlaceOrder converts the caller's cart into an order. The repository runs
// the order/order-items/cart-clear sequence in one transaction; once that
// commits the order is placed, and neither a confirmation-email failure nor
// an event-publish failure can undo it. The one exception surfaced to the
// caller is an unsendable confirmation (malformed recipient), reported even
// though the order stands.
func (s *OrderService) PlaceOrder(ctx context.Context, caller domain.Identity) (*domain.Order, error) {
	v, err, _ := s.sfg.Do(strconv.FormatInt(caller.CustomerID, 10), func() (interface{}, error) {
		order, err := s.orders.PlaceOrder(ctx, caller.CustomerID)
		if errors.Is(err, repository.ErrCartEmpty) {
			return nil, ErrEmptyCart
		}
		if err != nil {
			return nil, err
		}

		s.logger.WithFields(logrus.Fields{
			"order_id":     order.ID,
			"customer_id":  order.CustomerID,
			"total_amount": order.TotalAmount,
			"items_count":  len(order.Items),
		}).Info("order placed")

		if notifyErr := s.sendConfirmation(ctx, order); notifyErr != nil {
			return order, notifyErr
		}
		s.publishPlaced(ctx, order)
		return order, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Order), nil
}

func (s *OrderService) sendConfirmation(ctx context.Context, order *domain.Order) error {
	customer, err := s.customers.GetByID(ctx, order.CustomerID)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).
			Error("failed to load customer for order confirmation")
		return nil
	}

	payload := notify.BuildOrderConfirmation(order)
	err = s.notifier.SendOrderConfirmation(ctx, customer.Email, payload)
	if errors.Is(err, notify.ErrInvalidRecipient) {
		return err
	}
	if err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).
			Error("failed to send order confirmation email")
	}
	return nil
}

func (s *OrderService) publishPlaced(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderPlaced(ctx, events.NewOrderPlacedEvent(order)); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).
			Error("failed to publish order.placed event")
	}
}

// GetOrder masks ownership: a caller who is neither the owner nor staff
// gets the same not-found error as for a nonexistent order.
func (s *OrderService) GetOrder(ctx context.Context, caller domain.Identity, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != caller.CustomerID && !caller.IsStaff {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) ListOwnOrders(ctx context.Context, caller domain.Identity) ([]*domain.Order, error) {
	return s.orders.ListByCustomer(ctx, caller.CustomerID)
}

func (s *OrderService) ListOrders(ctx context.Context, caller domain.Identity, filter repository.OrderFilter) ([]*domain.Order, error) {
	if !caller.IsStaff {
		return nil, ErrNotStaff
	}
	return s.orders.List(ctx, filter)
}

func (s *OrderService) UpdateShippingStatus(ctx context.Context, caller domain.Identity, orderID uuid.UUID, status domain.ShippingStatus) error {
	if !caller.IsStaff {
		return ErrNotStaff
	}
	if !domain.ValidShippingStatus(status) {
		return ErrInvalidStatus
	}
	if err := s.orders.UpdateShippingStatus(ctx, orderID, status); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": orderID,
		"status":   status,
		"staff":    caller.Username,
	}).Info("shipping status updated")
	return nil
}

// DeleteOrder refuses unconditionally. Orders are a permanent record; the
// restriction is deliberate policy, not a missing feature.
func (s *OrderService) DeleteOrder(_ context.Context, _ domain.Identity, _ uuid.UUID) error {
	return ErrDeletionDisabled
}
