package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	apperrors "messenger-client/internal/common/errors"
	"messenger-client/internal/features/session/repository"
	"messenger-client/internal/features/user/models"
	platformRedis "messenger-client/internal/platform/redis"
)

type sessionRepository struct {
	client platformRedis.KV
	key    string
}

// NewSessionRepository хранит сессию под ключом key без TTL
func NewSessionRepository(client platformRedis.KV, key string) repository.SessionStore {
	return &sessionRepository{
		client: client,
		key:    key,
	}
}

func (r *sessionRepository) Load(ctx context.Context) (*models.User, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNoSession
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSession, "read session key")
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSession, "parse session value")
	}
	return &user, nil
}

func (r *sessionRepository) Save(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSession, "encode session")
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSession, "write session key")
	}
	return nil
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSession, "delete session key")
	}
	return nil
}
