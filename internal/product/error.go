package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidStatus   = errors.New("invalid product status")
	ErrInvalidPrice    = errors.New("price must be non-negative")
	ErrMissingName     = errors.New("product name is required")
	ErrZeroDelta       = errors.New("stock adjustment delta must be non-zero")
)
