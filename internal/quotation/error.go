package quotation

import "errors"

var (
	ErrQuotationNotFound = errors.New("quotation not found")
	ErrEmptyItems        = errors.New("quotation must have at least one item")
	ErrTotalMismatch     = errors.New("submitted totals do not match computed totals")
	ErrInvalidStatus     = errors.New("invalid quotation status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrNotConvertible    = errors.New("quotation cannot be converted in its current status")
	ErrQuotationExpired  = errors.New("quotation validity has passed")
)
