package cart

import "errors"

var (
	ErrItemNotFound       = errors.New("cart item not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrMissingTalla       = errors.New("talla is required")
	ErrProductUnavailable = errors.New("product is not available for sale")
)
