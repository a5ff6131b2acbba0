package order

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusFinished, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// statusTransitions holds the allowed forward moves. Cancellation is only
// possible before production finishes.
var statusTransitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusFinished, StatusCancelled},
	StatusFinished:   {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

func CanTransition(from, to Status) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// NumberPrefix is the display-number prefix for pedidos: PED-YYYYMMDD-NNNN.
const NumberPrefix = "PED"

type Order struct {
	ID         int64       `json:"id"`
	Numero     string      `json:"numero"`
	CustomerID int64       `json:"customer_id"`
	Status     Status      `json:"status"`
	Priority   Priority    `json:"priority"`
	Subtotal   float64     `json:"subtotal"`
	Descuento  float64     `json:"descuento"`
	Impuesto   float64     `json:"impuesto"`
	Total      float64     `json:"total"`
	Direccion  string      `json:"direccion_envio"`
	Notas      *string     `json:"notas,omitempty"`
	WorkshopID *int64      `json:"workshop_id,omitempty"`
	CreatedBy  *int64      `json:"created_by,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	Items      []OrderItem `json:"items,omitempty"`
}

// OrderItem snapshots quantity and unit price at creation. Subtotal is
// cantidad x precio_unitario at insert time and is never recomputed from
// the live product price.
type OrderItem struct {
	ID             int64   `json:"id"`
	OrderID        int64   `json:"order_id"`
	ProductID      int64   `json:"producto_id"`
	Cantidad       int     `json:"cantidad"`
	Talla          string  `json:"talla"`
	Color          *string `json:"color,omitempty"`
	PrecioUnitario float64 `json:"precio_unitario"`
	Subtotal       float64 `json:"subtotal"`
	Notas          *string `json:"notas,omitempty"`
}

// CreateOrderInput is the creation payload. Field names follow the intake
// contract used by the storefront and back-office clients.
type CreateOrderInput struct {
	Cliente   ClienteInput `json:"cliente"`
	Items     []LineInput  `json:"items"`
	Subtotal  float64      `json:"subtotal"`
	Descuento float64      `json:"descuento"`
	Impuesto  float64      `json:"impuesto"`
	Total     float64      `json:"total"`
	Notas     *string      `json:"notas,omitempty"`
	Prioridad *Priority    `json:"prioridad,omitempty"`
	Direccion *string      `json:"direccion_envio,omitempty"`
}

type ClienteInput struct {
	RUC         string `json:"ruc"`
	RazonSocial string `json:"razon_social"`
	Email       string `json:"email"`
	Telefono    string `json:"telefono"`
	Direccion   string `json:"direccion"`
}

type LineInput struct {
	ProductoID     int64   `json:"producto_id"`
	Cantidad       int     `json:"cantidad"`
	Talla          string  `json:"talla"`
	Color          *string `json:"color,omitempty"`
	PrecioUnitario float64 `json:"precio_unitario"`
	Notas          *string `json:"notas,omitempty"`
}

// CreateOrderResult is the wire response for order creation.
type CreateOrderResult struct {
	Success      bool   `json:"success"`
	PedidoID     int64  `json:"pedidoId,omitempty"`
	NumeroPedido string `json:"numeroPedido,omitempty"`
	Error        string `json:"error,omitempty"`
}

type Filter struct {
	Status     *Status
	Priority   *Priority
	CustomerID *int64
	WorkshopID *int64
	Search     *string
	DateFrom   *time.Time
	DateTo     *time.Time
}

type SortField string

const (
	SortFieldCreatedAt SortField = "created_at"
	SortFieldTotal     SortField = "total"
	SortFieldPriority  SortField = "priority"
)

type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

type SortInput struct {
	Field     SortField
	Direction SortDirection
}
