package service

import (
	"context"
	"errors"
	"strings"

	"messenger-client/internal/common/logger"
	"messenger-client/internal/common/validation"
	"messenger-client/internal/features/chat/models"
	"messenger-client/internal/features/chat/repository"
)

// ErrEmptyMessage возвращается без обращения к шлюзу, если текст пустой или из пробелов
var ErrEmptyMessage = errors.New("message is empty")

type ChatService interface {
	History(ctx context.Context, conv models.Conversation) ([]models.Message, error)
	Send(ctx context.Context, conv models.Conversation, content string) (*models.Message, error)
}

type chatService struct {
	repo repository.MessageRepository
}

func NewChatService(repo repository.MessageRepository) ChatService {
	return &chatService{
		repo: repo,
	}
}

func (s *chatService) History(ctx context.Context, conv models.Conversation) ([]models.Message, error) {
	return s.repo.List(ctx, conv)
}

// Send отправляет сообщение от conv.UserID к conv.ContactID
func (s *chatService) Send(ctx context.Context, conv models.Conversation, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMessage
	}
	if err := validation.ValidateMessage(content); err != nil {
		return nil, err
	}

	msg, err := s.repo.Send(ctx, models.Outgoing{
		SenderID:   conv.UserID,
		ReceiverID: conv.ContactID,
		Content:    content,
	})
	if err != nil {
		logger.Warn().Err(err).Str("conversation", conv.String()).Msg("Send message failed")
		return nil, err
	}

	logger.Debug().Int64("message_id", msg.ID).Str("conversation", conv.String()).Msg("Message sent")
	return msg, nil
}
