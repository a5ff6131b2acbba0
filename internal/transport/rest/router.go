package rest

import (
	"net/http"

	"confetex-be/internal/logger"
	"confetex-be/internal/metrics"
	"confetex-be/internal/middleware"
	"confetex-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// NewRouter wires the full HTTP surface. Role gates follow the back-office
// split: admin manages users, sales handles customers/quotations/orders,
// production moves orders through the shop floor, warehouse moves stock.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewMux()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.AuthMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", healthz)
		r.Get("/metrics", metricsHandler)

		r.Route("/auth", func(r chi.Router) {
			// Accounts are provisioned by an admin; a bootstrap admin is
			// seeded by the first migration.
			r.With(middleware.RequireRole()).Post("/register", h.register)
			r.Post("/login", h.login)
			r.With(middleware.RequireAuth).Get("/me", h.me)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireRole())
			r.Get("/", h.listUsers)
			r.Post("/", h.register)
			r.Patch("/{id}", h.updateUser)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Use(middleware.RequireRole("sales"))
			r.Get("/", h.listCustomers)
			r.Post("/", h.upsertCustomer)
			r.Get("/{id}", h.getCustomer)
			r.Put("/{id}", h.updateCustomer)
			r.Delete("/{id}", h.deactivateCustomer)
			r.Post("/{id}/reactivate", h.reactivateCustomer)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.listCategories)
			r.With(middleware.RequireRole("sales")).Post("/", h.createCategory)
			r.With(middleware.RequireRole("sales")).Put("/{id}", h.updateCategory)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.listProducts)
			r.Get("/{id}", h.getProduct)
			r.With(middleware.RequireRole("sales")).Post("/", h.createProduct)
			r.With(middleware.RequireRole("sales")).Put("/{id}", h.updateProduct)
			r.With(middleware.RequireRole("warehouse")).Post("/{id}/stock", h.adjustStock)
		})

		r.Route("/workshops", func(r chi.Router) {
			r.Use(middleware.RequireRole("production"))
			r.Get("/", h.listWorkshops)
			r.Post("/", h.createWorkshop)
			r.Put("/{id}", h.updateWorkshop)
			r.Get("/{id}/load", h.workshopLoad)
		})

		r.Route("/quotations", func(r chi.Router) {
			r.Use(middleware.RequireRole("sales"))
			r.Get("/", h.listQuotations)
			r.Post("/", h.createQuotation)
			r.Get("/{id}", h.getQuotation)
			r.Patch("/{id}/status", h.updateQuotationStatus)
			r.Post("/{id}/convert", h.convertQuotation)
		})

		r.Route("/orders", func(r chi.Router) {
			r.With(middleware.RequireRole("sales")).Post("/", h.createOrder)
			r.With(middleware.RequireRole("sales", "production")).Get("/", h.listOrders)
			r.With(middleware.RequireRole("sales", "production")).Get("/{id}", h.getOrder)
			r.With(middleware.RequireRole("sales", "production")).Patch("/{id}/status", h.updateOrderStatus)
			r.With(middleware.RequireRole("production")).Patch("/{id}/workshop", h.assignOrderWorkshop)
		})

		// Storefront
		r.Get("/catalog", h.catalog)
		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/", h.getCart)
			r.Post("/", h.addCartItem)
			r.Put("/{id}", h.updateCartItem)
			r.Delete("/{id}", h.removeCartItem)
			r.Post("/checkout", h.checkout)
		})
	})

	return r
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func metricsHandler(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSON(w, http.StatusOK, metrics.Snapshot())
}
