package domain

import "errors"

// Validation and transaction errors surfaced across the engine boundary.
// Absent rows are not errors: repo lookups return nil for them.
var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrMissingField      = errors.New("required field is missing")
	ErrInvalidPrice      = errors.New("price must be a non-negative amount")
	ErrNotFound          = errors.New("not found")
	ErrProductReferenced = errors.New("product is referenced by committed sales")
	ErrBadCredentials    = errors.New("staff credentials rejected")
)
