package category

import (
	"context"
	"strings"

	"confetex-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for categories.
type Service interface {
	GetCategories(ctx context.Context, onlyActive bool) ([]Category, error)
	GetByID(ctx context.Context, id int64) (Category, error)
	AddCategory(ctx context.Context, name, description string) (Category, error)
	UpdateCategory(ctx context.Context, c Category) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetCategories(ctx context.Context, onlyActive bool) ([]Category, error) {
	categories, err := s.repo.GetAll(ctx, onlyActive)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get categories", zap.Error(err))
		return nil, err
	}
	if categories == nil {
		categories = []Category{}
	}
	return categories, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) AddCategory(ctx context.Context, name, description string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrMissingName
	}

	c, err := s.repo.Create(ctx, name, description)
	if err != nil {
		if strings.Contains(err.Error(), "categories_name_key") {
			return Category{}, ErrNameExists
		}
		logger.FromCtx(ctx).Error("failed to create category", zap.String("name", name), zap.Error(err))
		return Category{}, err
	}

	return c, nil
}

func (s *service) UpdateCategory(ctx context.Context, c Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrMissingName
	}
	return s.repo.Update(ctx, c)
}
