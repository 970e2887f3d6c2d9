package service

import (
	"context"
	"errors"
	"strings"

	apperrors "messenger-client/internal/common/errors"
	"messenger-client/internal/common/logger"
	"messenger-client/internal/common/validation"
	"messenger-client/internal/features/auth/repository"
	"messenger-client/internal/features/user/models"
	"messenger-client/internal/platform/gateway"
)

// Тексты ошибок для экрана входа
const (
	MsgAuthFailed        = "Authorization failed"
	MsgServerUnreachable = "Cannot reach the server"
	MsgProfileFailed     = "Failed to save profile"
)

var (
	ErrMissingCredentials = errors.New("phone and password are required")
	ErrNameRequired       = errors.New("name is required")
	ErrNoUser             = errors.New("no user to update")
)

type AuthService interface {
	Login(ctx context.Context, phone, password string) (*models.User, error)
	Register(ctx context.Context, phone, password string) (*models.User, error)
	CompleteProfile(ctx context.Context, user *models.User, name, bio, phoneContact, avatar string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User, name, bio, avatar string) (*models.User, error)
}

type authService struct {
	repo repository.AuthRepository
}

func NewAuthService(repo repository.AuthRepository) AuthService {
	return &authService{
		repo: repo,
	}
}

func (s *authService) Login(ctx context.Context, phone, password string) (*models.User, error) {
	creds, err := credentials(phone, password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Login(ctx, creds)
	if err != nil {
		logger.Warn().Err(err).Str("phone", creds.Phone).Msg("Login failed")
		return nil, err
	}

	logger.Info().Int64("user_id", user.ID).Bool("profile_completed", user.IsProfileCompleted).Msg("User logged in")
	return user, nil
}

func (s *authService) Register(ctx context.Context, phone, password string) (*models.User, error) {
	creds, err := credentials(phone, password)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidatePhone(creds.Phone); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(creds.Password); err != nil {
		return nil, err
	}

	user, err := s.repo.Register(ctx, creds)
	if err != nil {
		logger.Warn().Err(err).Str("phone", creds.Phone).Msg("Registration failed")
		return nil, err
	}

	logger.Info().Int64("user_id", user.ID).Msg("User registered")
	return user, nil
}

// CompleteProfile завершает онбординг. Контактный телефон по умолчанию — телефон учетной записи.
func (s *authService) CompleteProfile(ctx context.Context, user *models.User, name, bio, phoneContact, avatar string) (*models.User, error) {
	if user == nil {
		return nil, ErrNoUser
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	if err := validation.ValidateBio(bio); err != nil {
		return nil, err
	}
	if strings.TrimSpace(phoneContact) == "" {
		phoneContact = user.Phone
	}

	updated, err := s.repo.CompleteProfile(ctx, models.ProfileCompletion{
		UserID:       user.ID,
		Name:         name,
		Bio:          bio,
		PhoneContact: phoneContact,
		Avatar:       strings.TrimSpace(avatar),
	})
	if err != nil {
		logger.Warn().Err(err).Int64("user_id", user.ID).Msg("Profile completion failed")
		return nil, err
	}
	return updated, nil
}

func (s *authService) UpdateProfile(ctx context.Context, user *models.User, name, bio, avatar string) (*models.User, error) {
	if user == nil {
		return nil, ErrNoUser
	}
	if err := validation.ValidateBio(bio); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateProfile(ctx, models.ProfileUpdate{
		UserID: user.ID,
		Name:   strings.TrimSpace(name),
		Bio:    bio,
		Avatar: strings.TrimSpace(avatar),
	})
	if err != nil {
		logger.Warn().Err(err).Int64("user_id", user.ID).Msg("Profile update failed")
		return nil, err
	}

	// Шлюз не возвращает служебные флаги при обновлении, сохраняем их из сессии
	updated.IsAdmin = user.IsAdmin
	updated.IsBlocked = user.IsBlocked
	updated.IsProfileCompleted = updated.IsProfileCompleted || user.IsProfileCompleted
	return updated, nil
}

// ErrorText переводит ошибку входа в текст для пользователя
func ErrorText(err error, fallback string) string {
	switch {
	case err == nil:
		return ""
	case gateway.IsTransport(err):
		return MsgServerUnreachable
	}
	if _, ok := apperrors.AsAppError(err); !ok {
		// локальная проверка полей формы
		return err.Error()
	}
	return gateway.Message(err, fallback)
}

func credentials(phone, password string) (models.Credentials, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || password == "" {
		return models.Credentials{}, ErrMissingCredentials
	}
	return models.Credentials{Phone: phone, Password: password}, nil
}
