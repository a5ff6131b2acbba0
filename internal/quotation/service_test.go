package quotation

import (
	"context"
	"testing"
	"time"

	"confetex-be/internal/customer"
	"confetex-be/internal/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, q *Quotation, cliente customer.UpsertInput) error {
	args := m.Called(ctx, q, cliente)
	return args.Error(0)
}

func (m *MockRepository) FetchQuotations(ctx context.Context, filter Filter, limit, offset int32) ([]*Quotation, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Quotation), args.Error(1)
}

func (m *MockRepository) CountQuotations(ctx context.Context, filter Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, quotationID int64) (*Quotation, error) {
	args := m.Called(ctx, quotationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Quotation), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, quotationID int64, status Status) error {
	args := m.Called(ctx, quotationID, status)
	return args.Error(0)
}

func (m *MockRepository) MarkConverted(ctx context.Context, quotationID, orderID int64) error {
	args := m.Called(ctx, quotationID, orderID)
	return args.Error(0)
}

type MockOrderCreator struct {
	mock.Mock
}

func (m *MockOrderCreator) Create(ctx context.Context, input order.CreateOrderInput) (*order.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func convertibleQuotation(status Status) *Quotation {
	notas := "entrega parcial permitida"
	return &Quotation{
		ID:         55,
		Numero:     "COT-20260310-0003",
		CustomerID: 12,
		Status:     status,
		Subtotal:   150.00,
		Impuesto:   27.00,
		Total:      177.00,
		ValidUntil: time.Now().AddDate(0, 0, 7),
		Notas:      &notas,
		Customer: &customer.Customer{
			ID:          12,
			RUC:         "20512345678",
			RazonSocial: "Confecciones del Sur EIRL",
			Email:       "ventas@delsur.pe",
			Telefono:    "912345678",
			Direccion:   "Calle Los Telares 88, Arequipa",
			Active:      true,
		},
		Items: []QuotationItem{
			{ID: 1, QuotationID: 55, ProductID: 4, Cantidad: 10, Talla: "L", PrecioUnitario: 15.00, Subtotal: 150.00},
		},
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsValidityAndStatus", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", ctx, mock.AnythingOfType("*quotation.Quotation"), mock.Anything).Return(nil)

		svc := NewService(repo, new(MockOrderCreator))
		q, err := svc.Create(ctx, CreateQuotationInput{
			Cliente: order.ClienteInput{RUC: "20512345678", RazonSocial: "Confecciones del Sur EIRL"},
			Items: []order.LineInput{
				{ProductoID: 4, Cantidad: 10, Talla: "L", PrecioUnitario: 15.00},
			},
			Subtotal: 150.00,
			Total:    150.00,
		})

		require.NoError(t, err)
		assert.Equal(t, StatusDraft, q.Status)
		assert.WithinDuration(t,
			time.Now().AddDate(0, 0, DefaultValidityDays), q.ValidUntil, time.Minute)
		assert.Equal(t, 150.00, q.Items[0].Subtotal)
	})

	t.Run("TotalMismatchRejected", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockOrderCreator))
		_, err := svc.Create(ctx, CreateQuotationInput{
			Cliente: order.ClienteInput{RUC: "20512345678", RazonSocial: "Confecciones del Sur EIRL"},
			Items: []order.LineInput{
				{ProductoID: 4, Cantidad: 10, Talla: "L", PrecioUnitario: 15.00},
			},
			Subtotal: 150.00,
			Total:    120.00,
		})
		assert.ErrorIs(t, err, ErrTotalMismatch)
	})

	t.Run("EmptyItemsRejected", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockOrderCreator))
		_, err := svc.Create(ctx, CreateQuotationInput{})
		assert.ErrorIs(t, err, ErrEmptyItems)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("DraftToSent", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", ctx, int64(55)).Return(convertibleQuotation(StatusDraft), nil)
		repo.On("UpdateStatus", ctx, int64(55), StatusSent).Return(nil)

		svc := NewService(repo, new(MockOrderCreator))
		assert.NoError(t, svc.UpdateStatus(ctx, 55, StatusSent))
	})

	t.Run("DraftToAcceptedRejected", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", ctx, int64(55)).Return(convertibleQuotation(StatusDraft), nil)

		svc := NewService(repo, new(MockOrderCreator))
		assert.ErrorIs(t, svc.UpdateStatus(ctx, 55, StatusAccepted), ErrInvalidTransition)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockOrderCreator))
		assert.ErrorIs(t, svc.UpdateStatus(ctx, 55, Status("won")), ErrInvalidStatus)
	})
}

func TestService_Convert(t *testing.T) {
	ctx := context.Background()

	t.Run("SentQuotationBecomesPedido", func(t *testing.T) {
		q := convertibleQuotation(StatusSent)

		repo := new(MockRepository)
		repo.On("GetByID", ctx, int64(55)).Return(q, nil)
		repo.On("MarkConverted", ctx, int64(55), int64(200)).Return(nil)

		orders := new(MockOrderCreator)
		orders.On("Create", ctx, mock.MatchedBy(func(input order.CreateOrderInput) bool {
			return input.Cliente.RUC == q.Customer.RUC &&
				len(input.Items) == 1 &&
				input.Items[0].ProductoID == 4 &&
				input.Total == q.Total
		})).Return(&order.Order{ID: 200, Numero: "PED-20260314-0008"}, nil)

		svc := NewService(repo, orders)
		o, err := svc.Convert(ctx, 55)

		require.NoError(t, err)
		assert.Equal(t, int64(200), o.ID)
		repo.AssertExpectations(t)
		orders.AssertExpectations(t)
	})

	t.Run("DraftRefused", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", ctx, int64(55)).Return(convertibleQuotation(StatusDraft), nil)

		orders := new(MockOrderCreator)
		svc := NewService(repo, orders)
		_, err := svc.Convert(ctx, 55)

		assert.ErrorIs(t, err, ErrNotConvertible)
		orders.AssertNotCalled(t, "Create")
	})

	t.Run("AlreadyConvertedRefused", func(t *testing.T) {
		q := convertibleQuotation(StatusAccepted)
		existing := int64(180)
		q.OrderID = &existing

		repo := new(MockRepository)
		repo.On("GetByID", ctx, int64(55)).Return(q, nil)

		svc := NewService(repo, new(MockOrderCreator))
		_, err := svc.Convert(ctx, 55)
		assert.ErrorIs(t, err, ErrNotConvertible)
	})

	t.Run("ExpiredRefused", func(t *testing.T) {
		q := convertibleQuotation(StatusSent)
		q.ValidUntil = time.Now().AddDate(0, 0, -1)

		repo := new(MockRepository)
		repo.On("GetByID", ctx, int64(55)).Return(q, nil)

		svc := NewService(repo, new(MockOrderCreator))
		_, err := svc.Convert(ctx, 55)
		assert.ErrorIs(t, err, ErrQuotationExpired)
	})
}
