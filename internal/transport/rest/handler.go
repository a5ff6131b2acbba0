package rest

import (
	"confetex-be/internal/cart"
	"confetex-be/internal/category"
	"confetex-be/internal/customer"
	"confetex-be/internal/order"
	"confetex-be/internal/product"
	"confetex-be/internal/quotation"
	"confetex-be/internal/user"
	"confetex-be/internal/workshop"
)

// Handler bundles the domain services behind the HTTP surface.
type Handler struct {
	users      user.Service
	customers  customer.Service
	categories category.Service
	products   product.Service
	workshops  workshop.Service
	quotations quotation.Service
	orders     order.Service
	carts      cart.Service
}

func NewHandler(
	users user.Service,
	customers customer.Service,
	categories category.Service,
	products product.Service,
	workshops workshop.Service,
	quotations quotation.Service,
	orders order.Service,
	carts cart.Service,
) *Handler {
	return &Handler{
		users:      users,
		customers:  customers,
		categories: categories,
		products:   products,
		workshops:  workshops,
		quotations: quotations,
		orders:     orders,
		carts:      carts,
	}
}
