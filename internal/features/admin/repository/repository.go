package repository

import (
	"context"

	"messenger-client/internal/features/user/models"
)

// UserAdminRepository — управление пользователями без учета контактов
type UserAdminRepository interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, req models.NewUser) (*models.User, error)
	SetBlocked(ctx context.Context, req models.BlockUpdate) error
}
