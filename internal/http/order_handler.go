package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/manikantha-asam/ecommerce/internal/domain"
	"github.com/manikantha-asam/ecommerce/internal/repository"
	"github.com/manikantha-asam/ecommerce/internal/service"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type UpdateOrderStatusDTO struct {
	ShippingStatus string `json:"shipping_status"`
}

// POST /api/place-order
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), identity)
	if err != nil {
		// A missing cart is a client mistake at this endpoint, not a
		// lookup failure, so it gets 400 alongside the empty-cart case.
		if errors.Is(err, repository.ErrCartNotFound) {
			respondError(w, http.StatusBadRequest, "invalid_request", "your cart does not exist")
			return
		}
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

// GET /api/user-orders
func (h *OrderHandler) ListOwnOrders(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orders, err := h.orders.ListOwnOrders(r.Context(), identity)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if orders == nil {
		orders = make([]*domain.Order, 0)
	}
	respondJSON(w, http.StatusOK, orders)
}

// GET /api/order/{order_id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a valid UUID")
		return
	}

	order, err := h.orders.GetOrder(r.Context(), identity, orderID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// PUT /api/order/{order_id} (staff)
func (h *OrderHandler) UpdateShippingStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a valid UUID")
		return
	}

	var req UpdateOrderStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	status := domain.ShippingStatus(req.ShippingStatus)
	if err := h.orders.UpdateShippingStatus(r.Context(), identity, orderID, status); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"detail": "shipping status updated"})
}

// DELETE /api/order/{order_id}
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a valid UUID")
		return
	}

	if err := h.orders.DeleteOrder(r.Context(), identity, orderID); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// GET /api/all-orders (staff)
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	filter, err := parseOrderFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	orders, err := h.orders.ListOrders(r.Context(), identity, filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if orders == nil {
		orders = make([]*domain.Order, 0)
	}
	respondJSON(w, http.StatusOK, orders)
}

func parseOrderFilter(r *http.Request) (repository.OrderFilter, error) {
	q := r.URL.Query()
	filter := repository.OrderFilter{
		Status: domain.ShippingStatus(q.Get("status")),
		Search: q.Get("search"),
	}

	if raw := q.Get("created_from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, errors.New("created_from must be formatted YYYY-MM-DD")
		}
		filter.CreatedFrom = &t
	}
	if raw := q.Get("created_to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, errors.New("created_to must be formatted YYYY-MM-DD")
		}
		// Make the range inclusive of the whole end day.
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.CreatedTo = &end
	}
	return filter, nil
}
