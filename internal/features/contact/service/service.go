package service

import (
	"context"
	"errors"
	"strings"

	apperrors "messenger-client/internal/common/errors"
	"messenger-client/internal/common/logger"
	"messenger-client/internal/features/contact/models"
	"messenger-client/internal/features/contact/repository"
	userModels "messenger-client/internal/features/user/models"
)

// Тексты ошибок экрана добавления контакта
const (
	MsgUserNotFound = "User not found"
	MsgSearchFailed = "Search failed"
	MsgAddFailed    = "Failed to add contact"
)

var (
	ErrEmptyPhone   = errors.New("phone is required")
	ErrNoCandidate  = errors.New("no contact selected")
	ErrInvalidOwner = errors.New("invalid user id")
)

type ContactService interface {
	List(ctx context.Context, userID int64) ([]models.Contact, error)
	Search(ctx context.Context, phone string) (*userModels.User, error)
	Add(ctx context.Context, userID int64, candidate *userModels.User) error
}

type contactService struct {
	repo repository.ContactRepository
}

func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactService{
		repo: repo,
	}
}

func (s *contactService) List(ctx context.Context, userID int64) ([]models.Contact, error) {
	if userID <= 0 {
		return nil, ErrInvalidOwner
	}
	return s.repo.List(ctx, userID)
}

// Search не отправляет запрос для пустого телефона
func (s *contactService) Search(ctx context.Context, phone string) (*userModels.User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, ErrEmptyPhone
	}

	user, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		logger.Info().Err(err).Str("phone", phone).Msg("Contact search failed")
		return nil, err
	}
	return user, nil
}

// Add связывает текущего пользователя и найденного кандидата одним вызовом
func (s *contactService) Add(ctx context.Context, userID int64, candidate *userModels.User) error {
	if userID <= 0 {
		return ErrInvalidOwner
	}
	if candidate == nil || candidate.ID <= 0 {
		return ErrNoCandidate
	}

	if err := s.repo.Add(ctx, models.Link{UserID: userID, ContactID: candidate.ID}); err != nil {
		logger.Warn().Err(err).Int64("user_id", userID).Int64("contact_id", candidate.ID).Msg("Add contact failed")
		return err
	}

	logger.Info().Int64("user_id", userID).Int64("contact_id", candidate.ID).Msg("Contact added")
	return nil
}

// SearchErrorText различает только "не найден" и все остальные ошибки
func SearchErrorText(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrEmptyPhone) {
		return err.Error()
	}
	if apperrors.IsNotFound(err) {
		return MsgUserNotFound
	}
	return MsgSearchFailed
}
