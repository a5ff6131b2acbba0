package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Upsert(ctx context.Context, input UpsertInput) (Customer, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(Customer), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (Customer, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Customer), args.Error(1)
}

func (m *MockRepository) GetByRUC(ctx context.Context, ruc string) (Customer, error) {
	args := m.Called(ctx, ruc)
	return args.Get(0).(Customer), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter Filter, limit, offset int32) ([]Customer, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]Customer), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) HasOrders(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) SetActive(ctx context.Context, id int64, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func validInput() UpsertInput {
	return UpsertInput{
		RUC:         "20601234567",
		RazonSocial: "Textiles Andinos SAC",
		Email:       "compras@andinos.pe",
		Telefono:    "987654321",
		Direccion:   "Av. Industrial 450, Lima",
	}
}

func TestService_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		input := validInput()
		repo.On("Upsert", ctx, input).Return(Customer{ID: 5, RUC: input.RUC}, nil)

		svc := NewService(repo)
		c, err := svc.Upsert(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, int64(5), c.ID)
	})

	t.Run("ShortRUC", func(t *testing.T) {
		input := validInput()
		input.RUC = "123"

		svc := NewService(new(MockRepository))
		_, err := svc.Upsert(ctx, input)
		assert.ErrorIs(t, err, ErrInvalidRUC)
	})

	t.Run("MissingRazonSocial", func(t *testing.T) {
		input := validInput()
		input.RazonSocial = ""

		svc := NewService(new(MockRepository))
		_, err := svc.Upsert(ctx, input)
		assert.ErrorIs(t, err, ErrMissingRazon)
	})

	t.Run("BadEmail", func(t *testing.T) {
		input := validInput()
		input.Email = "no-arroba"

		svc := NewService(new(MockRepository))
		_, err := svc.Upsert(ctx, input)
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("EmptyEmailAllowed", func(t *testing.T) {
		repo := new(MockRepository)
		input := validInput()
		input.Email = ""
		repo.On("Upsert", ctx, input).Return(Customer{ID: 6}, nil)

		svc := NewService(repo)
		_, err := svc.Upsert(ctx, input)
		assert.NoError(t, err)
	})
}

func TestService_Deactivate(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepository)
	repo.On("SetActive", ctx, int64(5), false).Return(nil)

	svc := NewService(repo)
	assert.NoError(t, svc.Deactivate(ctx, 5))
	repo.AssertExpectations(t)
}
