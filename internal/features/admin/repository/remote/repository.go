package remote

import (
	"context"
	"net/url"

	"messenger-client/internal/features/admin/repository"
	"messenger-client/internal/features/user/models"
	"messenger-client/internal/platform/gateway"
)

// blockResult — ответ PUT users: {id, phone, name, is_blocked}
type blockResult struct {
	ID        int64 `json:"id" validate:"required,gt=0"`
	IsBlocked bool  `json:"is_blocked"`
}

type userAdminRepository struct {
	client *gateway.Client
}

func NewUserAdminRepository(client *gateway.Client) repository.UserAdminRepository {
	return &userAdminRepository{
		client: client,
	}
}

func (r *userAdminRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	query := url.Values{}
	query.Set("action", "all")

	users := make([]models.User, 0)
	if err := r.client.Get(ctx, r.client.Endpoints().Users, query, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userAdminRepository) CreateUser(ctx context.Context, req models.NewUser) (*models.User, error) {
	var user models.User
	if err := r.client.Post(ctx, r.client.Endpoints().Users, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userAdminRepository) SetBlocked(ctx context.Context, req models.BlockUpdate) error {
	var result blockResult
	return r.client.Put(ctx, r.client.Endpoints().Users, req, &result)
}
