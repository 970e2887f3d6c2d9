package repository

import (
	"context"

	"messenger-client/internal/features/chat/models"
)

type MessageRepository interface {
	List(ctx context.Context, conv models.Conversation) ([]models.Message, error)
	Send(ctx context.Context, msg models.Outgoing) (*models.Message, error)
}
