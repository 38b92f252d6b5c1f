package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/manikantha-asam/ecommerce/internal/domain"
)

type PostgresOrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// PlaceOrder converts the customer's cart into an order. The whole
// transition runs inside one transaction: a reader observes either the
// pre-order state or the fully placed one, never a hybrid. Any failure
// partway (including a product deleted concurrently) rolls everything back.
func (r *PostgresOrderRepository) PlaceOrder(ctx context.Context, customerID int64) (*domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin place order: %w", err)
	}
	defer tx.Rollback()

	var cartID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM carts WHERE customer_id = $1`, customerID).Scan(&cartID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query cart: %w", err)
	}

	// Single consistent snapshot of the cart: quantities and the products'
	// current prices, read once and never re-fetched.
	rows, err := tx.QueryContext(ctx,
		`SELECT ci.product_id, p.name, p.price, ci.quantity
		 FROM cart_items ci
		 JOIN products p ON p.id = ci.product_id
		 WHERE ci.cart_id = $1
		 ORDER BY ci.id`, cartID)
	if err != nil {
		return nil, fmt.Errorf("query cart snapshot: %w", err)
	}

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.Price, &it.Quantity); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan cart snapshot: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	rows.Close()

	// Checked before any write: an empty cart never produces a partial order.
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	var total int64
	for _, it := range items {
		total += it.Price * it.Quantity
	}

	order := &domain.Order{
		ID:             uuid.New(),
		CustomerID:     customerID,
		TotalAmount:    total,
		ShippingStatus: domain.ShippingStatusPending,
		CreatedAt:      time.Now().UTC(),
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, customer_id, total_amount, shipping_status, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		order.ID, order.CustomerID, order.TotalAmount, order.ShippingStatus, order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	for i := range items {
		items[i].OrderID = order.ID
		err = tx.QueryRowContext(ctx,
			`INSERT INTO order_items (order_id, product_id, product_name, quantity, price)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			order.ID, items[i].ProductID, items[i].ProductName,
			items[i].Quantity, items[i].Price).Scan(&items[i].ID)
		if err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
	}

	// The cart row stays and may be reused; only its lines are consumed.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return nil, fmt.Errorf("clear cart items: %w", err)
	}

	err = tx.QueryRowContext(ctx,
		`SELECT username FROM customers WHERE id = $1`, customerID).Scan(&order.Username)
	if err != nil {
		return nil, fmt.Errorf("query order owner: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit place order: %w", err)
	}

	order.Items = items
	return order, nil
}

func (r *PostgresOrderRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT o.id, o.customer_id, c.username, o.total_amount, o.shipping_status, o.created_at
	          FROM orders o
	          JOIN customers c ON c.id = o.customer_id
	          WHERE o.id = $1`

	order := &domain.Order{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &order.CustomerID, &order.Username,
		&order.TotalAmount, &order.ShippingStatus, &order.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by id: %w", err)
	}

	items, err := r.itemsFor(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *PostgresOrderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	query := `SELECT o.id, o.customer_id, c.username, o.total_amount, o.shipping_status, o.created_at
	          FROM orders o
	          JOIN customers c ON c.id = o.customer_id
	          WHERE o.customer_id = $1
	          ORDER BY o.created_at DESC`

	return r.queryOrders(ctx, query, customerID)
}

func (r *PostgresOrderRepository) List(ctx context.Context, filter OrderFilter) ([]*domain.Order, error) {
	query := `SELECT o.id, o.customer_id, c.username, o.total_amount, o.shipping_status, o.created_at
	          FROM orders o
	          JOIN customers c ON c.id = o.customer_id
	          WHERE 1=1`
	var args []interface{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND o.shipping_status = $%d", len(args))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		query += fmt.Sprintf(" AND o.created_at >= $%d", len(args))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		query += fmt.Sprintf(" AND o.created_at <= $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (c.username ILIKE $%d OR o.id::text ILIKE $%d)", n, n)
	}
	query += " ORDER BY o.created_at DESC"

	return r.queryOrders(ctx, query, args...)
}

func (r *PostgresOrderRepository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order := &domain.Order{}
		if err := rows.Scan(
			&order.ID, &order.CustomerID, &order.Username,
			&order.TotalAmount, &order.ShippingStatus, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for _, order := range orders {
		items, err := r.itemsFor(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}
	return orders, nil
}

func (r *PostgresOrderRepository) itemsFor(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, product_id, product_name, quantity, price
		 FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return items, nil
}

func (r *PostgresOrderRepository) UpdateShippingStatus(ctx context.Context, id uuid.UUID, status domain.ShippingStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET shipping_status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update shipping status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update shipping status rows affected: %w", err)
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
