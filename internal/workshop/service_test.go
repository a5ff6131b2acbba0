package workshop

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

func (m *MockRepository) GetAll(ctx context.Context, onlyActive bool) ([]Workshop, error) {
	args := m.Called(ctx, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Workshop), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (Workshop, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Workshop), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, w Workshop) (Workshop, error) {
	args := m.Called(ctx, w)
	return args.Get(0).(Workshop), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id int64, params UpdateParams) (Workshop, error) {
	args := m.Called(ctx, id, params)
	return args.Get(0).(Workshop), args.Error(1)
}

func (m *MockRepository) CountAssignedOrders(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", ctx, mock.AnythingOfType("Workshop")).
			Return(Workshop{ID: 1, Name: "Taller San Juan"}, nil)

		svc := NewService(repo)
		w, err := svc.Create(ctx, Workshop{Name: "Taller San Juan", Capacity: 15})
		require.NoError(t, err)
		assert.Equal(t, int64(1), w.ID)
	})

	t.Run("MissingName", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		_, err := svc.Create(ctx, Workshop{Name: "  "})
		assert.ErrorIs(t, err, ErrMissingName)
	})
}

func TestService_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("OverCapacity", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", ctx, int64(3)).
			Return(Workshop{ID: 3, Name: "Taller Rimac", Capacity: 10, Active: true}, nil)
		repo.On("CountAssignedOrders", ctx, int64(3)).Return(int64(12), nil)

		svc := NewService(repo)
		load, err := svc.Load(ctx, 3)
		require.NoError(t, err)
		assert.True(t, load.OverLoaded)
		assert.Equal(t, int64(12), load.OpenOrders)
	})

	t.Run("NoDeclaredCapacity", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", ctx, int64(4)).
			Return(Workshop{ID: 4, Capacity: 0}, nil)
		repo.On("CountAssignedOrders", ctx, int64(4)).Return(int64(30), nil)

		svc := NewService(repo)
		load, err := svc.Load(ctx, 4)
		require.NoError(t, err)
		assert.False(t, load.OverLoaded, "zero capacity means unbounded")
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", ctx, int64(99)).Return(Workshop{}, ErrWorkshopNotFound)

		svc := NewService(repo)
		_, err := svc.Load(ctx, 99)
		assert.ErrorIs(t, err, ErrWorkshopNotFound)
	})
}
