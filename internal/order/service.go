package order

import (
	"context"
	"math"

	"confetex-be/internal/customer"
	"confetex-be/internal/logger"
	"confetex-be/internal/metrics"
	"confetex-be/internal/utils"
	"confetex-be/internal/workshop"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*Order, error)
	GetOrders(ctx context.Context, filter Filter, sort *SortInput, limit, page *int32) ([]*Order, int64, error)
	GetOrderDetail(ctx context.Context, orderID int64) (*Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status Status) error
	AssignWorkshop(ctx context.Context, orderID int64, workshopID *int64) error
}

// workshopGetter is the slice of workshop.Service the order flow needs.
type workshopGetter interface {
	GetByID(ctx context.Context, id int64) (workshop.Workshop, error)
}

type service struct {
	repo      Repository
	workshops workshopGetter
}

func NewService(repo Repository, workshops workshopGetter) Service {
	return &service{repo: repo, workshops: workshops}
}

// moneyEqual compares currency amounts at centimo precision.
func moneyEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

func validateInput(input CreateOrderInput) error {
	if len(input.Items) == 0 {
		return ErrEmptyItems
	}

	if err := customer.ValidateInput(customer.UpsertInput(input.Cliente)); err != nil {
		return err
	}

	var computed float64
	for _, item := range input.Items {
		if item.Cantidad <= 0 {
			return ErrInvalidQuantity
		}
		if item.PrecioUnitario < 0 {
			return ErrInvalidUnitPrice
		}
		if item.Talla == "" {
			return ErrMissingTalla
		}
		computed += float64(item.Cantidad) * item.PrecioUnitario
	}

	if !moneyEqual(computed, input.Subtotal) {
		return ErrTotalMismatch
	}
	if !moneyEqual(input.Subtotal-input.Descuento+input.Impuesto, input.Total) {
		return ErrTotalMismatch
	}

	if input.Prioridad != nil && !ValidPriority(*input.Prioridad) {
		return ErrInvalidPriority
	}

	return nil
}

// Create validates the payload and hands the whole sequence to the
// repository transaction. Stock is intentionally untouched here; inventory
// moves through the product stock-adjustment operation.
func (s *service) Create(ctx context.Context, input CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.String("ruc", input.Cliente.RUC),
	)

	if err := validateInput(input); err != nil {
		log.Warn("order creation rejected", zap.Error(err))
		metrics.OrderFailures.Inc()
		return nil, err
	}

	priority := PriorityNormal
	if input.Prioridad != nil {
		priority = *input.Prioridad
	}

	direccion := input.Cliente.Direccion
	if input.Direccion != nil && *input.Direccion != "" {
		direccion = *input.Direccion
	}

	o := &Order{
		Status:    StatusPending,
		Priority:  priority,
		Subtotal:  input.Subtotal,
		Descuento: input.Descuento,
		Impuesto:  input.Impuesto,
		Total:     input.Total,
		Direccion: direccion,
		Notas:     input.Notas,
	}

	if userID, ok := utils.GetUserIDFromContext(ctx); ok {
		o.CreatedBy = &userID
	}

	for _, item := range input.Items {
		o.Items = append(o.Items, OrderItem{
			ProductID:      item.ProductoID,
			Cantidad:       item.Cantidad,
			Talla:          item.Talla,
			Color:          item.Color,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       float64(item.Cantidad) * item.PrecioUnitario,
			Notas:          item.Notas,
		})
	}

	if err := s.repo.CreateOrder(ctx, o, customer.UpsertInput(input.Cliente)); err != nil {
		log.Error("order creation failed", zap.Error(err))
		metrics.OrderFailures.Inc()
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	log.Info("order created",
		zap.Int64("order_id", o.ID),
		zap.String("numero", o.Numero),
		zap.Float64("total", o.Total),
	)

	return o, nil
}

func (s *service) GetOrders(ctx context.Context, filter Filter, sort *SortInput, limit, page *int32) ([]*Order, int64, error) {
	finalLimit, offset := utils.Pagination(limit, page)

	orders, err := s.repo.FetchOrders(ctx, filter, sort, finalLimit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountOrders(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	orderIDs := make([]int64, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	items, err := s.repo.FetchOrderItems(ctx, orderIDs)
	if err != nil {
		return nil, 0, err
	}
	for _, o := range orders {
		o.Items = items[o.ID]
	}

	return orders, total, nil
}

func (s *service) GetOrderDetail(ctx context.Context, orderID int64) (*Order, error) {
	return s.repo.GetOrderDetail(ctx, orderID)
}

func (s *service) UpdateStatus(ctx context.Context, orderID int64, status Status) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}

	current, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return err
	}

	if !CanTransition(current.Status, status) {
		return ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("order status updated",
		zap.Int64("order_id", orderID),
		zap.String("from", string(current.Status)),
		zap.String("to", string(status)),
	)

	return nil
}

// AssignWorkshop routes a pedido to a taller; nil clears the assignment.
func (s *service) AssignWorkshop(ctx context.Context, orderID int64, workshopID *int64) error {
	if workshopID != nil {
		w, err := s.workshops.GetByID(ctx, *workshopID)
		if err != nil || !w.Active {
			return ErrWorkshopUnusable
		}
	}
	return s.repo.AssignWorkshop(ctx, orderID, workshopID)
}
