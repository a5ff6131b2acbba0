package product

import "time"

type Status string

const (
	StatusActive       Status = "active"
	StatusInactive     Status = "inactive"
	StatusOutOfStock   Status = "out_of_stock"
	StatusDiscontinued Status = "discontinued"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusInactive, StatusOutOfStock, StatusDiscontinued:
		return true
	}
	return false
}

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	StockMin    int       `json:"stock_min"`
	Status      Status    `json:"status"`
	CategoryID  int64     `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Filter struct {
	CategoryID *int64
	Status     *Status
	Search     *string
	MinPrice   *float64
	MaxPrice   *float64
	LowStock   bool
}

type UpdateParams struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	StockMin    *int     `json:"stock_min"`
	Status      *Status  `json:"status"`
	CategoryID  *int64   `json:"category_id"`
}

// StockAdjustment is the result of a manual stock move.
type StockAdjustment struct {
	Product  Product `json:"product"`
	LowStock bool    `json:"low_stock"`
}
