package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/manikantha-asam/ecommerce/internal/domain"
)

// ErrInvalidRecipient marks a message that can never be sent (malformed
// address or header). Unlike transport failures it is surfaced to callers.
var ErrInvalidRecipient = errors.New("invalid recipient address")

type ConfirmationLine struct {
	ProductName string
	UnitPrice   int64
	Quantity    int64
	LineTotal   int64
}

// OrderConfirmation is built from the data captured at placement time,
// never re-derived from the database afterwards.
type OrderConfirmation struct {
	Username    string
	OrderID     string
	TotalAmount int64
	Lines       []ConfirmationLine
}

type PasswordReset struct {
	Username string
	ResetURL string
}

type ContactMessage struct {
	Name    string
	Email   string
	Message string
}

type Notifier interface {
	SendOrderConfirmation(ctx context.Context, to string, p OrderConfirmation) error
	SendPasswordReset(ctx context.Context, to string, p PasswordReset) error
	SendContactMessage(ctx context.Context, p ContactMessage) error
}

// BuildOrderConfirmation snapshots an order into its notification payload.
func BuildOrderConfirmation(order *domain.Order) OrderConfirmation {
	lines := make([]ConfirmationLine, 0, len(order.Items))
	for _, it := range order.Items {
		lines = append(lines, ConfirmationLine{
			ProductName: it.ProductName,
			UnitPrice:   it.Price,
			Quantity:    it.Quantity,
			LineTotal:   it.LineTotal(),
		})
	}
	return OrderConfirmation{
		Username:    order.Username,
		OrderID:     order.ID.String(),
		TotalAmount: order.TotalAmount,
		Lines:       lines,
	}
}

// FormatAmount renders a minor-unit amount as rupees.
func FormatAmount(minor int64) string {
	return fmt.Sprintf("₹%d.%02d", minor/100, minor%100)
}
