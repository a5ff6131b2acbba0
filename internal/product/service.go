package product

import (
	"context"
	"strings"

	"confetex-be/internal/logger"
	"confetex-be/internal/metrics"
	"confetex-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	GetByID(ctx context.Context, id int64) (Product, error)
	List(ctx context.Context, filter Filter, limit, page *int32) ([]Product, int64, error)
	Catalog(ctx context.Context, filter Filter, limit, page *int32) ([]Product, int64, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, id int64, params UpdateParams) (Product, error)
	AdjustStock(ctx context.Context, id int64, delta int) (StockAdjustment, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetByID(ctx context.Context, id int64) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter, limit, page *int32) ([]Product, int64, error) {
	finalLimit, offset := utils.Pagination(limit, page)
	return s.repo.List(ctx, filter, finalLimit, offset)
}

// Catalog is the storefront view: active products only, whatever other
// filters the caller sends.
func (s *service) Catalog(ctx context.Context, filter Filter, limit, page *int32) ([]Product, int64, error) {
	active := StatusActive
	filter.Status = &active

	finalLimit, offset := utils.Pagination(limit, page)
	return s.repo.List(ctx, filter, finalLimit, offset)
}

func (s *service) Create(ctx context.Context, p Product) (Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return Product{}, ErrMissingName
	}
	if p.Price < 0 {
		return Product{}, ErrInvalidPrice
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	if !ValidStatus(p.Status) {
		return Product{}, ErrInvalidStatus
	}
	if p.Stock == 0 && p.Status == StatusActive {
		p.Status = StatusOutOfStock
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to create product", zap.String("name", p.Name), zap.Error(err))
		return Product{}, err
	}

	return created, nil
}

func (s *service) Update(ctx context.Context, id int64, params UpdateParams) (Product, error) {
	if params.Status != nil && !ValidStatus(*params.Status) {
		return Product{}, ErrInvalidStatus
	}
	if params.Price != nil && *params.Price < 0 {
		return Product{}, ErrInvalidPrice
	}
	return s.repo.Update(ctx, id, params)
}

// AdjustStock is the only path that moves inventory. Order creation is
// deliberately stock-neutral; warehouse staff invoke this explicitly.
func (s *service) AdjustStock(ctx context.Context, id int64, delta int) (StockAdjustment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AdjustStock"),
		zap.Int64("product_id", id),
	)

	if delta == 0 {
		return StockAdjustment{}, ErrZeroDelta
	}

	p, err := s.repo.AdjustStock(ctx, id, delta)
	if err != nil {
		log.Error("stock adjustment failed", zap.Error(err))
		return StockAdjustment{}, err
	}

	metrics.StockAdjustments.Inc()

	adj := StockAdjustment{
		Product:  p,
		LowStock: p.Stock <= p.StockMin,
	}

	if adj.LowStock {
		log.Warn("stock at or below minimum",
			zap.Int("stock", p.Stock),
			zap.Int("stock_min", p.StockMin),
		)
	}

	return adj, nil
}
