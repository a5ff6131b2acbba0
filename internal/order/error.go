package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyItems        = errors.New("order must have at least one item")
	ErrInvalidQuantity   = errors.New("item quantity must be positive")
	ErrInvalidUnitPrice  = errors.New("item unit price must be non-negative")
	ErrMissingTalla      = errors.New("item talla is required")
	ErrTotalMismatch     = errors.New("submitted totals do not match computed totals")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrWorkshopUnusable  = errors.New("workshop is inactive or unknown")
	ErrCreateOrderFailed = errors.New("order could not be created")
)
