package customer

import (
	"context"

	"confetex-be/internal/logger"
	"confetex-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Upsert(ctx context.Context, input UpsertInput) (Customer, error)
	GetByID(ctx context.Context, id int64) (Customer, error)
	List(ctx context.Context, filter Filter, limit, page *int32) ([]Customer, int64, error)
	Deactivate(ctx context.Context, id int64) error
	Reactivate(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ValidateInput applies the intake checks: 11-digit RUC, razon social
// present, email shape if given. Nothing more is enforced.
func ValidateInput(input UpsertInput) error {
	if !utils.ValidRUC(input.RUC) {
		return ErrInvalidRUC
	}
	if input.RazonSocial == "" {
		return ErrMissingRazon
	}
	if !utils.ValidEmail(input.Email) {
		return ErrInvalidEmail
	}
	return nil
}

func (s *service) Upsert(ctx context.Context, input UpsertInput) (Customer, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Upsert"),
	)

	if err := ValidateInput(input); err != nil {
		return Customer{}, err
	}

	c, err := s.repo.Upsert(ctx, input)
	if err != nil {
		log.Error("customer upsert failed", zap.String("ruc", input.RUC), zap.Error(err))
		return Customer{}, err
	}

	log.Info("customer upserted", zap.Int64("customer_id", c.ID))
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter, limit, page *int32) ([]Customer, int64, error) {
	finalLimit, offset := utils.Pagination(limit, page)
	return s.repo.List(ctx, filter, finalLimit, offset)
}

// Deactivate is the only delete. Customers referenced by orders are never
// removed from storage.
func (s *service) Deactivate(ctx context.Context, id int64) error {
	return s.repo.SetActive(ctx, id, false)
}

func (s *service) Reactivate(ctx context.Context, id int64) error {
	return s.repo.SetActive(ctx, id, true)
}
