package user

import (
	"context"
	"strings"

	"confetex-be/internal/auth"
	"confetex-be/internal/logger"
	"confetex-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, email, password, fullName string, role Role) (User, error)
	Login(ctx context.Context, email, password string) (string, User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	List(ctx context.Context, limit, page *int32) ([]User, int64, error)
	Update(ctx context.Context, id int64, params UpdateUserParams) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, email, password, fullName string, role Role) (User, error) {
	log := logger.FromCtx(ctx)

	if !ValidRole(role) {
		return User{}, ErrInvalidRole
	}
	if !utils.ValidEmail(email) || email == "" {
		return User{}, ErrInvalidCredentials
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return User{}, err
	}

	u, err := s.repo.Create(ctx, email, hashed, fullName, role)
	if err != nil {
		log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		if strings.Contains(err.Error(), "users_email_key") {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}

	log.Info("user registered",
		zap.Int64("user_id", u.ID),
		zap.String("role", string(u.Role)),
	)

	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Warn("login: email not found", zap.String("email", email))
		return "", User{}, ErrInvalidCredentials
	}

	if !u.Active {
		return "", User{}, ErrUserInactive
	}

	if !auth.CheckPasswordHash(password, u.Password) {
		log.Warn("login: password mismatch", zap.Int64("user_id", u.ID))
		return "", User{}, ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(u.ID, string(u.Role), u.Email)
	if err != nil {
		log.Error("failed to generate jwt", zap.Int64("user_id", u.ID), zap.Error(err))
		return "", User{}, err
	}

	return token, u, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, limit, page *int32) ([]User, int64, error) {
	finalLimit, offset := utils.Pagination(limit, page)
	return s.repo.List(ctx, finalLimit, offset)
}

func (s *service) Update(ctx context.Context, id int64, params UpdateUserParams) error {
	if params.Role == nil && params.Active == nil {
		return nil
	}
	if params.Role != nil && !ValidRole(*params.Role) {
		return ErrInvalidRole
	}
	return s.repo.Update(ctx, id, params)
}
