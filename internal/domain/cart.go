package domain

import "time"

type Cart struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// CartItem is one (cart, product) line. At most one exists per pair; a
// repeated add increments Quantity instead of inserting a second row.
type CartItem struct {
	ID        int64 `json:"id"`
	CartID    int64 `json:"cart_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// CartLine is a cart item joined with its product, as served to clients and
// as snapshotted by order placement.
type CartLine struct {
	ID       int64   `json:"id"`
	Product  Product `json:"product"`
	Quantity int64   `json:"quantity"`
}

func (l CartLine) LineTotal() int64 {
	return l.Product.Price * l.Quantity
}
