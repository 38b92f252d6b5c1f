package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotStaff           = errors.New("staff privileges required")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
	ErrEmptyCart          = errors.New("cart is empty, cannot place an order")
	ErrInvalidStatus      = errors.New("unknown shipping status")
	ErrDeletionDisabled   = errors.New("order deletion is disabled")
)
