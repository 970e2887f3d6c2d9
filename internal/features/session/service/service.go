package service

import (
	"context"
	"errors"

	"messenger-client/internal/common/logger"
	"messenger-client/internal/common/validation"
	"messenger-client/internal/features/session/repository"
	"messenger-client/internal/features/user/models"
)

var ErrNilUser = errors.New("cannot save empty session")

// SessionService — явная, внедряемая точка доступа к сохраненной сессии.
// Экраны не читают хранилище напрямую.
type SessionService interface {
	// Restore возвращает сохраненного пользователя или nil, если сессии нет
	// или она не читается.
	Restore(ctx context.Context) *models.User
	Save(ctx context.Context, user *models.User) error
	Clear(ctx context.Context) error
}

type sessionService struct {
	store repository.SessionStore
}

func NewSessionService(store repository.SessionStore) SessionService {
	return &sessionService{
		store: store,
	}
}

func (s *sessionService) Restore(ctx context.Context) *models.User {
	user, err := s.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNoSession) {
			logger.Warn().Err(err).Msg("Stored session is unreadable, starting anonymous")
		}
		return nil
	}
	if err := validation.Struct(user); err != nil {
		logger.Warn().Err(err).Msg("Stored session is malformed, starting anonymous")
		return nil
	}

	logger.Info().Int64("user_id", user.ID).Msg("Session restored")
	return user
}

func (s *sessionService) Save(ctx context.Context, user *models.User) error {
	if user == nil {
		return ErrNilUser
	}
	if err := s.store.Save(ctx, user); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to save session")
		return err
	}
	return nil
}

func (s *sessionService) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to clear session")
		return err
	}
	return nil
}
