package remote

import (
	"context"
	"net/url"
	"strconv"

	"messenger-client/internal/features/chat/models"
	"messenger-client/internal/features/chat/repository"
	"messenger-client/internal/platform/gateway"
)

type messageRepository struct {
	client *gateway.Client
}

func NewMessageRepository(client *gateway.Client) repository.MessageRepository {
	return &messageRepository{
		client: client,
	}
}

func (r *messageRepository) List(ctx context.Context, conv models.Conversation) ([]models.Message, error) {
	query := url.Values{}
	query.Set("user_id", strconv.FormatInt(conv.UserID, 10))
	query.Set("contact_id", strconv.FormatInt(conv.ContactID, 10))

	messages := make([]models.Message, 0)
	if err := r.client.Get(ctx, r.client.Endpoints().Messages, query, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) Send(ctx context.Context, msg models.Outgoing) (*models.Message, error) {
	var created models.Message
	if err := r.client.Post(ctx, r.client.Endpoints().Messages, msg, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
