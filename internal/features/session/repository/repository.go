package repository

import (
	"context"
	"errors"

	"messenger-client/internal/features/user/models"
)

// ErrNoSession — в хранилище нет сохраненного пользователя
var ErrNoSession = errors.New("no stored session")

// SessionStore хранит один сериализованный User под единственным ключом
type SessionStore interface {
	Load(ctx context.Context) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	Clear(ctx context.Context) error
}
