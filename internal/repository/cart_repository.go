package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/manikantha-asam/ecommerce/internal/domain"
)

type PostgresCartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) *PostgresCartRepository {
	return &PostgresCartRepository{db: db}
}

func (r *PostgresCartRepository) AddItem(ctx context.Context, customerID, productID, quantity int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin add item: %w", err)
	}
	defer tx.Rollback()

	var cartID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO carts (customer_id) VALUES ($1)
		 ON CONFLICT (customer_id) DO UPDATE SET customer_id = EXCLUDED.customer_id
		 RETURNING id`, customerID).Scan(&cartID)
	if err != nil {
		return fmt.Errorf("get or create cart: %w", err)
	}

	// One row per (cart, product): repeat adds bump the quantity.
	_, err = tx.ExecContext(ctx,
		`INSERT INTO cart_items (cart_id, product_id, quantity) VALUES ($1, $2, $3)
		 ON CONFLICT (cart_id, product_id)
		 DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		cartID, productID, quantity)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			// the product was deleted between the caller's existence
			// check and this insert
			return ErrProductNotFound
		}
		return fmt.Errorf("upsert cart item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit add item: %w", err)
	}
	return nil
}

func (r *PostgresCartRepository) GetLines(ctx context.Context, customerID int64) ([]*domain.CartLine, error) {
	var cartID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM carts WHERE customer_id = $1`, customerID).Scan(&cartID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query cart: %w", err)
	}

	query := `SELECT ci.id, ci.quantity, p.id, p.name, p.description, p.image, p.price, p.category
	          FROM cart_items ci
	          JOIN products p ON p.id = ci.product_id
	          WHERE ci.cart_id = $1
	          ORDER BY ci.id`

	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("query cart items: %w", err)
	}
	defer rows.Close()

	lines := make([]*domain.CartLine, 0)
	for rows.Next() {
		l := &domain.CartLine{}
		if err := rows.Scan(
			&l.ID, &l.Quantity,
			&l.Product.ID, &l.Product.Name, &l.Product.Description,
			&l.Product.Image, &l.Product.Price, &l.Product.Category); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return lines, nil
}

// UpdateItemQuantity touches the item only when it belongs to the caller's
// own cart, so a foreign item and a missing item are indistinguishable.
func (r *PostgresCartRepository) UpdateItemQuantity(ctx context.Context, customerID, itemID, quantity int64) error {
	query := `UPDATE cart_items ci SET quantity = $3
	          FROM carts c
	          WHERE ci.id = $2 AND ci.cart_id = c.id AND c.customer_id = $1`

	res, err := r.db.ExecContext(ctx, query, customerID, itemID, quantity)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update cart item rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *PostgresCartRepository) DeleteItem(ctx context.Context, customerID, itemID int64) error {
	query := `DELETE FROM cart_items ci
	          USING carts c
	          WHERE ci.id = $2 AND ci.cart_id = c.id AND c.customer_id = $1`

	res, err := r.db.ExecContext(ctx, query, customerID, itemID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete cart item rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}
