package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/manikantha-asam/ecommerce/internal/domain"
)

const customerColumns = `id, username, customer_name, email, password_hash, phone_number,
	address, city, state, profile_picture, is_active, is_staff, is_superuser, last_login`

type PostgresCustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{db: db}
}

func (r *PostgresCustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers
	          (username, customer_name, email, password_hash, phone_number, address, city, state, profile_picture, is_active, is_staff, is_superuser)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		c.Username, c.CustomerName, c.Email, c.PasswordHash, c.PhoneNumber,
		c.Address, c.City, c.State, c.ProfilePicture,
		c.IsActive, c.IsStaff, c.IsSuperuser).Scan(&c.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if strings.Contains(pqErr.Constraint, "email") {
				return ErrEmailTaken
			}
			return ErrUsernameTaken
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *PostgresCustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

func (r *PostgresCustomerRepository) GetByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE username = $1`, username)
}

func (r *PostgresCustomerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE email = $1`, email)
}

func (r *PostgresCustomerRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.Customer, error) {
	c := &domain.Customer{}
	var lastLogin sql.NullTime
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&c.ID, &c.Username, &c.CustomerName, &c.Email, &c.PasswordHash,
		&c.PhoneNumber, &c.Address, &c.City, &c.State, &c.ProfilePicture,
		&c.IsActive, &c.IsStaff, &c.IsSuperuser, &lastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query customer: %w", err)
	}
	if lastLogin.Valid {
		c.LastLogin = &lastLogin.Time
	}
	return c, nil
}

func (r *PostgresCustomerRepository) UpdateProfile(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers
	          SET customer_name = $2, email = $3, phone_number = $4, address = $5,
	              city = $6, state = $7, profile_picture = $8
	          WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		c.ID, c.CustomerName, c.Email, c.PhoneNumber, c.Address, c.City, c.State, c.ProfilePicture)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrEmailTaken
		}
		return fmt.Errorf("update customer profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update customer rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func (r *PostgresCustomerRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE customers SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update customer password: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func (r *PostgresCustomerRepository) RecordLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE customers SET last_login = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	return nil
}

func (r *PostgresCustomerRepository) List(ctx context.Context, search string) ([]*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers`
	var args []interface{}
	if search != "" {
		args = append(args, "%"+search+"%")
		query += ` WHERE username ILIKE $1 OR customer_name ILIKE $1 OR email ILIKE $1 OR phone_number ILIKE $1`
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		c := &domain.Customer{}
		var lastLogin sql.NullTime
		if err := rows.Scan(
			&c.ID, &c.Username, &c.CustomerName, &c.Email, &c.PasswordHash,
			&c.PhoneNumber, &c.Address, &c.City, &c.State, &c.ProfilePicture,
			&c.IsActive, &c.IsStaff, &c.IsSuperuser, &lastLogin); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		if lastLogin.Valid {
			c.LastLogin = &lastLogin.Time
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return customers, nil
}
