package quotation

import (
	"context"
	"math"
	"time"

	"confetex-be/internal/customer"
	"confetex-be/internal/logger"
	"confetex-be/internal/metrics"
	"confetex-be/internal/order"
	"confetex-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input CreateQuotationInput) (*Quotation, error)
	GetQuotations(ctx context.Context, filter Filter, limit, page *int32) ([]*Quotation, int64, error)
	GetByID(ctx context.Context, quotationID int64) (*Quotation, error)
	UpdateStatus(ctx context.Context, quotationID int64, status Status) error
	Convert(ctx context.Context, quotationID int64) (*order.Order, error)
}

// orderCreator is the slice of order.Service that conversion needs.
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

func moneyEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

func validateInput(input CreateQuotationInput) error {
	if len(input.Items) == 0 {
		return ErrEmptyItems
	}

	if err := customer.ValidateInput(customer.UpsertInput(input.Cliente)); err != nil {
		return err
	}

	var computed float64
	for _, item := range input.Items {
		if item.Cantidad <= 0 {
			return order.ErrInvalidQuantity
		}
		if item.PrecioUnitario < 0 {
			return order.ErrInvalidUnitPrice
		}
		if item.Talla == "" {
			return order.ErrMissingTalla
		}
		computed += float64(item.Cantidad) * item.PrecioUnitario
	}

	if !moneyEqual(computed, input.Subtotal) {
		return ErrTotalMismatch
	}
	if !moneyEqual(input.Subtotal-input.Descuento+input.Impuesto, input.Total) {
		return ErrTotalMismatch
	}

	return nil
}

func (s *service) Create(ctx context.Context, input CreateQuotationInput) (*Quotation, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateQuotation"),
		zap.String("ruc", input.Cliente.RUC),
	)

	if err := validateInput(input); err != nil {
		log.Warn("quotation creation rejected", zap.Error(err))
		return nil, err
	}

	validUntil := time.Now().AddDate(0, 0, DefaultValidityDays)
	if input.ValidUntil != nil {
		validUntil = *input.ValidUntil
	}

	q := &Quotation{
		Status:     StatusDraft,
		Subtotal:   input.Subtotal,
		Descuento:  input.Descuento,
		Impuesto:   input.Impuesto,
		Total:      input.Total,
		ValidUntil: validUntil,
		Notas:      input.Notas,
	}

	if userID, ok := utils.GetUserIDFromContext(ctx); ok {
		q.CreatedBy = &userID
	}

	for _, item := range input.Items {
		q.Items = append(q.Items, QuotationItem{
			ProductID:      item.ProductoID,
			Cantidad:       item.Cantidad,
			Talla:          item.Talla,
			Color:          item.Color,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       float64(item.Cantidad) * item.PrecioUnitario,
			Notas:          item.Notas,
		})
	}

	if err := s.repo.Create(ctx, q, customer.UpsertInput(input.Cliente)); err != nil {
		log.Error("quotation creation failed", zap.Error(err))
		return nil, err
	}

	log.Info("quotation created",
		zap.Int64("quotation_id", q.ID),
		zap.String("numero", q.Numero),
	)

	return q, nil
}

func (s *service) GetQuotations(ctx context.Context, filter Filter, limit, page *int32) ([]*Quotation, int64, error) {
	finalLimit, offset := utils.Pagination(limit, page)

	quotations, err := s.repo.FetchQuotations(ctx, filter, finalLimit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountQuotations(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return quotations, total, nil
}

func (s *service) GetByID(ctx context.Context, quotationID int64) (*Quotation, error) {
	return s.repo.GetByID(ctx, quotationID)
}

func (s *service) UpdateStatus(ctx context.Context, quotationID int64, status Status) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}

	current, err := s.repo.GetByID(ctx, quotationID)
	if err != nil {
		return err
	}

	if !CanTransition(current.Status, status) {
		return ErrInvalidTransition
	}

	return s.repo.UpdateStatus(ctx, quotationID, status)
}

// Convert turns a cotizacion into a pedido through the regular
// order-creation flow, then links the pedido back on the quotation.
// Draft, rejected, expired and already-converted quotations are refused.
func (s *service) Convert(ctx context.Context, quotationID int64) (*order.Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "ConvertQuotation"),
		zap.Int64("quotation_id", quotationID),
	)

	q, err := s.repo.GetByID(ctx, quotationID)
	if err != nil {
		return nil, err
	}

	if q.OrderID != nil {
		return nil, ErrNotConvertible
	}
	if q.Status != StatusSent && q.Status != StatusAccepted {
		return nil, ErrNotConvertible
	}
	if time.Now().After(q.ValidUntil) {
		return nil, ErrQuotationExpired
	}

	input := order.CreateOrderInput{
		Cliente: order.ClienteInput{
			RUC:         q.Customer.RUC,
			RazonSocial: q.Customer.RazonSocial,
			Email:       q.Customer.Email,
			Telefono:    q.Customer.Telefono,
			Direccion:   q.Customer.Direccion,
		},
		Subtotal:  q.Subtotal,
		Descuento: q.Descuento,
		Impuesto:  q.Impuesto,
		Total:     q.Total,
		Notas:     q.Notas,
	}
	for _, item := range q.Items {
		input.Items = append(input.Items, order.LineInput{
			ProductoID:     item.ProductID,
			Cantidad:       item.Cantidad,
			Talla:          item.Talla,
			Color:          item.Color,
			PrecioUnitario: item.PrecioUnitario,
			Notas:          item.Notas,
		})
	}

	o, err := s.orders.Create(ctx, input)
	if err != nil {
		log.Error("conversion failed to create order", zap.Error(err))
		return nil, err
	}

	if err := s.repo.MarkConverted(ctx, quotationID, o.ID); err != nil {
		// The pedido exists either way; the missing link is logged loudly
		// so back-office can reconcile.
		log.Error("order created but quotation link failed",
			zap.Int64("order_id", o.ID),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.QuotationsConverted.Inc()
	log.Info("quotation converted",
		zap.Int64("order_id", o.ID),
		zap.String("numero_pedido", o.Numero),
	)

	return o, nil
}
