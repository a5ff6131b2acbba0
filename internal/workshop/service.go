package workshop

import (
	"context"
	"strings"

	"confetex-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetAll(ctx context.Context, onlyActive bool) ([]Workshop, error)
	GetByID(ctx context.Context, id int64) (Workshop, error)
	Create(ctx context.Context, w Workshop) (Workshop, error)
	Update(ctx context.Context, id int64, params UpdateParams) (Workshop, error)
	Load(ctx context.Context, id int64) (WorkshopLoad, error)
}

// WorkshopLoad reports open production volume against declared capacity.
type WorkshopLoad struct {
	Workshop   Workshop `json:"workshop"`
	OpenOrders int64    `json:"open_orders"`
	OverLoaded bool     `json:"over_loaded"`
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetAll(ctx context.Context, onlyActive bool) ([]Workshop, error) {
	workshops, err := s.repo.GetAll(ctx, onlyActive)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list workshops", zap.Error(err))
		return nil, err
	}
	if workshops == nil {
		workshops = []Workshop{}
	}
	return workshops, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (Workshop, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, w Workshop) (Workshop, error) {
	w.Name = strings.TrimSpace(w.Name)
	if w.Name == "" {
		return Workshop{}, ErrMissingName
	}

	created, err := s.repo.Create(ctx, w)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to create workshop", zap.String("name", w.Name), zap.Error(err))
		return Workshop{}, err
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id int64, params UpdateParams) (Workshop, error) {
	if params.Name != nil && strings.TrimSpace(*params.Name) == "" {
		return Workshop{}, ErrMissingName
	}
	return s.repo.Update(ctx, id, params)
}

func (s *service) Load(ctx context.Context, id int64) (WorkshopLoad, error) {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return WorkshopLoad{}, err
	}

	open, err := s.repo.CountAssignedOrders(ctx, id)
	if err != nil {
		return WorkshopLoad{}, err
	}

	return WorkshopLoad{
		Workshop:   w,
		OpenOrders: open,
		OverLoaded: w.Capacity > 0 && open >= int64(w.Capacity),
	}, nil
}
