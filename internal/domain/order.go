package domain

import (
	"time"

	"github.com/google/uuid"
)

type ShippingStatus string

const (
	ShippingStatusPending   ShippingStatus = "pending"
	ShippingStatusShipped   ShippingStatus = "shipped"
	ShippingStatusDelivered ShippingStatus = "delivered"
	ShippingStatusCancelled ShippingStatus = "cancelled"
)

func ValidShippingStatus(s ShippingStatus) bool {
	switch s {
	case ShippingStatusPending, ShippingStatusShipped,
		ShippingStatusDelivered, ShippingStatusCancelled:
		return true
	}
	return false
}

// Order is frozen after placement: only ShippingStatus may change, and only
// through the staff-only status update path.
type Order struct {
	ID             uuid.UUID      `json:"id"`
	CustomerID     int64          `json:"customer_id"`
	Username       string         `json:"user"`
	TotalAmount    int64          `json:"total_amount"` // minor currency units
	ShippingStatus ShippingStatus `json:"shipping_status"`
	Items          []OrderItem    `json:"items"`
	CreatedAt      time.Time      `json:"created_at"`
}

// OrderItem carries the product name and unit price captured at placement
// time. Later product edits never touch these snapshots.
type OrderItem struct {
	ID          int64     `json:"-"`
	OrderID     uuid.UUID `json:"-"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
	Price       int64     `json:"price"` // unit price snapshot, minor units
}

func (i OrderItem) LineTotal() int64 {
	return i.Price * i.Quantity
}
