package quotation

import (
	"time"

	"confetex-be/internal/customer"
	"confetex-be/internal/order"
)

type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusSent, StatusAccepted, StatusRejected, StatusExpired:
		return true
	}
	return false
}

var statusTransitions = map[Status][]Status{
	StatusDraft:    {StatusSent, StatusRejected},
	StatusSent:     {StatusAccepted, StatusRejected, StatusExpired},
	StatusAccepted: {},
	StatusRejected: {},
	StatusExpired:  {},
}

func CanTransition(from, to Status) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NumberPrefix is the display-number prefix for cotizaciones:
// COT-YYYYMMDD-NNNN. Sequences are independent from pedido numbers.
const NumberPrefix = "COT"

// DefaultValidityDays applies when the payload carries no validity date.
const DefaultValidityDays = 15

type Quotation struct {
	ID         int64              `json:"id"`
	Numero     string             `json:"numero"`
	CustomerID int64              `json:"customer_id"`
	Status     Status             `json:"status"`
	Subtotal   float64            `json:"subtotal"`
	Descuento  float64            `json:"descuento"`
	Impuesto   float64            `json:"impuesto"`
	Total      float64            `json:"total"`
	ValidUntil time.Time          `json:"valid_until"`
	Notas      *string            `json:"notas,omitempty"`
	OrderID    *int64             `json:"order_id,omitempty"`
	CreatedBy  *int64             `json:"created_by,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	Items      []QuotationItem    `json:"items,omitempty"`
	Customer   *customer.Customer `json:"cliente,omitempty"`
}

type QuotationItem struct {
	ID             int64   `json:"id"`
	QuotationID    int64   `json:"quotation_id"`
	ProductID      int64   `json:"producto_id"`
	Cantidad       int     `json:"cantidad"`
	Talla          string  `json:"talla"`
	Color          *string `json:"color,omitempty"`
	PrecioUnitario float64 `json:"precio_unitario"`
	Subtotal       float64 `json:"subtotal"`
	Notas          *string `json:"notas,omitempty"`
}

type CreateQuotationInput struct {
	Cliente    order.ClienteInput `json:"cliente"`
	Items      []order.LineInput  `json:"items"`
	Subtotal   float64            `json:"subtotal"`
	Descuento  float64            `json:"descuento"`
	Impuesto   float64            `json:"impuesto"`
	Total      float64            `json:"total"`
	Notas      *string            `json:"notas,omitempty"`
	ValidUntil *time.Time         `json:"valid_until,omitempty"`
}

type Filter struct {
	Status     *Status
	CustomerID *int64
	Search     *string
}
