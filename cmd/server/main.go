package main

import (
	"net/http"

	"confetex-be/internal/cart"
	"confetex-be/internal/category"
	"confetex-be/internal/config"
	"confetex-be/internal/customer"
	"confetex-be/internal/db"
	"confetex-be/internal/logger"
	"confetex-be/internal/order"
	"confetex-be/internal/product"
	"confetex-be/internal/quotation"
	"confetex-be/internal/transport/rest"
	"confetex-be/internal/user"
	"confetex-be/internal/workshop"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	userSvc := user.NewService(user.NewRepository(database))
	customerSvc := customer.NewService(customer.NewRepository(database))
	categorySvc := category.NewService(category.NewRepository(database))
	productSvc := product.NewService(product.NewRepository(database))
	workshopSvc := workshop.NewService(workshop.NewRepository(database))
	orderSvc := order.NewService(order.NewRepository(database), workshopSvc)
	quotationSvc := quotation.NewService(quotation.NewRepository(database), orderSvc)
	cartSvc := cart.NewService(cart.NewRepository(database), orderSvc)

	handler := rest.NewHandler(
		userSvc, customerSvc, categorySvc, productSvc,
		workshopSvc, quotationSvc, orderSvc, cartSvc,
	)

	router := rest.NewRouter(handler)

	logger.L().Info("server starting", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
