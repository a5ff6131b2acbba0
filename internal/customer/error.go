package customer

import "errors"

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrInvalidRUC       = errors.New("ruc must be 11 digits")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrMissingRazon     = errors.New("razon social is required")
	ErrHasOrders        = errors.New("customer has orders and can only be deactivated")
)
