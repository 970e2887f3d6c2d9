package remote

import (
	"context"
	"net/url"
	"strconv"

	"messenger-client/internal/features/contact/models"
	"messenger-client/internal/features/contact/repository"
	userModels "messenger-client/internal/features/user/models"
	"messenger-client/internal/platform/gateway"
)

type contactRepository struct {
	client *gateway.Client
}

func NewContactRepository(client *gateway.Client) repository.ContactRepository {
	return &contactRepository{
		client: client,
	}
}

func (r *contactRepository) List(ctx context.Context, userID int64) ([]models.Contact, error) {
	query := url.Values{}
	query.Set("user_id", strconv.FormatInt(userID, 10))

	contacts := make([]models.Contact, 0)
	if err := r.client.Get(ctx, r.client.Endpoints().Contacts, query, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *contactRepository) Add(ctx context.Context, link models.Link) error {
	var result models.LinkResult
	return r.client.Post(ctx, r.client.Endpoints().Contacts, link, &result)
}

// FindByPhone ищет пользователя с заполненным профилем через users?action=search
func (r *contactRepository) FindByPhone(ctx context.Context, phone string) (*userModels.User, error) {
	query := url.Values{}
	query.Set("action", "search")
	query.Set("phone", phone)

	var user userModels.User
	if err := r.client.Get(ctx, r.client.Endpoints().Users, query, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
