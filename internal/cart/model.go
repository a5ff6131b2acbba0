package cart

import (
	"time"

	"confetex-be/internal/order"
)

// CartItem is a stored line plus the product fields the storefront renders.
// Price and status come from the live product row at read time; prices are
// only snapshotted when checkout turns the cart into a pedido.
type CartItem struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	ProductID     int64     `json:"producto_id"`
	ProductName   string    `json:"producto_nombre"`
	ProductStatus string    `json:"producto_status"`
	Price         float64   `json:"precio_unitario"`
	Stock         int       `json:"stock"`
	Cantidad      int       `json:"cantidad"`
	Talla         string    `json:"talla"`
	Color         *string   `json:"color,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type AddItemInput struct {
	ProductID int64   `json:"producto_id"`
	Cantidad  int     `json:"cantidad"`
	Talla     string  `json:"talla"`
	Color     *string `json:"color,omitempty"`
}

// CheckoutInput carries what the cart itself cannot: who is buying and
// where the pedido ships. Lines and prices come from the stored cart.
type CheckoutInput struct {
	Cliente   order.ClienteInput `json:"cliente"`
	Direccion *string            `json:"direccion_envio,omitempty"`
	Notas     *string            `json:"notas,omitempty"`
}

// IGVRate is the Peruvian sales tax applied at checkout.
const IGVRate = 0.18
