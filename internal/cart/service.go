package cart

import (
	"context"

	"confetex-be/internal/logger"
	"confetex-be/internal/metrics"
	"confetex-be/internal/order"
	"confetex-be/internal/product"

	"go.uber.org/zap"
)

type Service interface {
	GetItems(ctx context.Context, userID int64) ([]CartItem, error)
	AddItem(ctx context.Context, userID int64, input AddItemInput) (*CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID int64, cantidad int) error
	RemoveItem(ctx context.Context, userID, itemID int64) error
	Checkout(ctx context.Context, userID int64, input CheckoutInput) (*order.Order, error)
}

type orderCreator interface {
	Create(ctx context.Context, input order.CreateOrderInput) (*order.Order, error)
}

type service struct {
	repo   Repository
	orders orderCreator
}

func NewService(repo Repository, orders orderCreator) Service {
	return &service{repo: repo, orders: orders}
}

func (s *service) GetItems(ctx context.Context, userID int64) ([]CartItem, error) {
	return s.repo.GetItems(ctx, userID)
}

func (s *service) AddItem(ctx context.Context, userID int64, input AddItemInput) (*CartItem, error) {
	if input.Cantidad <= 0 {
		return nil, ErrInvalidQuantity
	}
	if input.Talla == "" {
		return nil, ErrMissingTalla
	}
	return s.repo.AddItem(ctx, userID, input)
}

func (s *service) UpdateQuantity(ctx context.Context, userID, itemID int64, cantidad int) error {
	if cantidad <= 0 {
		return ErrInvalidQuantity
	}
	return s.repo.UpdateQuantity(ctx, userID, itemID, cantidad)
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID int64) error {
	return s.repo.RemoveItem(ctx, userID, itemID)
}

// Checkout snapshots current product prices into a pedido through the
// regular order-creation flow, then empties the cart. Lines whose product
// is no longer active block the whole checkout rather than being silently
// dropped.
func (s *service) Checkout(ctx context.Context, userID int64, input CheckoutInput) (*order.Order, error) {
	metrics.CheckoutRequests.Inc()

	log := logger.FromCtx(ctx).With(
		zap.String("method", "Checkout"),
		zap.Int64("user_id", userID),
	)

	items, err := s.repo.GetItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	var subtotal float64
	orderInput := order.CreateOrderInput{
		Cliente:   input.Cliente,
		Notas:     input.Notas,
		Direccion: input.Direccion,
	}
	for _, item := range items {
		if item.ProductStatus != string(product.StatusActive) {
			log.Warn("checkout blocked by unavailable product",
				zap.Int64("producto_id", item.ProductID),
				zap.String("status", item.ProductStatus),
			)
			return nil, ErrProductUnavailable
		}

		subtotal += float64(item.Cantidad) * item.Price
		orderInput.Items = append(orderInput.Items, order.LineInput{
			ProductoID:     item.ProductID,
			Cantidad:       item.Cantidad,
			Talla:          item.Talla,
			Color:          item.Color,
			PrecioUnitario: item.Price,
		})
	}

	orderInput.Subtotal = subtotal
	orderInput.Impuesto = subtotal * IGVRate
	orderInput.Total = orderInput.Subtotal + orderInput.Impuesto

	o, err := s.orders.Create(ctx, orderInput)
	if err != nil {
		log.Error("checkout failed to create order", zap.Error(err))
		return nil, err
	}

	if err := s.repo.Clear(ctx, userID); err != nil {
		// The pedido is committed; a stale cart is an annoyance, not a loss.
		log.Error("failed to clear cart after checkout",
			zap.Int64("order_id", o.ID), zap.Error(err))
	}

	log.Info("checkout completed",
		zap.Int64("order_id", o.ID),
		zap.String("numero", o.Numero),
		zap.Float64("total", o.Total),
	)

	return o, nil
}
