package service

import (
	"context"
	"errors"
	"strings"

	"messenger-client/internal/common/logger"
	"messenger-client/internal/common/validation"
	"messenger-client/internal/features/admin/repository"
	"messenger-client/internal/features/user/models"
)

var (
	ErrIncompleteForm = errors.New("phone and password are required")
	// ErrAdminImmune — администраторов нельзя блокировать
	ErrAdminImmune = errors.New("administrators cannot be blocked")
	ErrNoTarget    = errors.New("no user selected")
)

type AdminService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, phone, password, name string) (*models.User, error)
	ToggleBlock(ctx context.Context, target *models.User) error
}

type adminService struct {
	repo repository.UserAdminRepository
}

func NewAdminService(repo repository.UserAdminRepository) AdminService {
	return &adminService{
		repo: repo,
	}
}

func (s *adminService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *adminService) CreateUser(ctx context.Context, phone, password, name string) (*models.User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || password == "" {
		return nil, ErrIncompleteForm
	}
	if err := validation.ValidatePhone(phone); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, models.NewUser{
		Phone:    phone,
		Password: password,
		Name:     strings.TrimSpace(name),
	})
	if err != nil {
		logger.Warn().Err(err).Str("phone", phone).Msg("Create user failed")
		return nil, err
	}

	logger.Info().Int64("user_id", user.ID).Msg("User created by admin")
	return user, nil
}

// ToggleBlock инвертирует is_blocked целевого пользователя
func (s *adminService) ToggleBlock(ctx context.Context, target *models.User) error {
	if target == nil || target.ID <= 0 {
		return ErrNoTarget
	}
	if target.IsAdmin {
		return ErrAdminImmune
	}

	req := models.BlockUpdate{UserID: target.ID, IsBlocked: !target.IsBlocked}
	if err := s.repo.SetBlocked(ctx, req); err != nil {
		logger.Warn().Err(err).Int64("user_id", target.ID).Msg("Block toggle failed")
		return err
	}

	logger.Info().Int64("user_id", target.ID).Bool("is_blocked", req.IsBlocked).Msg("Block flag changed")
	return nil
}
