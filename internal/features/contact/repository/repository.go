package repository

import (
	"context"

	"messenger-client/internal/features/contact/models"
	userModels "messenger-client/internal/features/user/models"
)

type ContactRepository interface {
	List(ctx context.Context, userID int64) ([]models.Contact, error)
	Add(ctx context.Context, link models.Link) error
	FindByPhone(ctx context.Context, phone string) (*userModels.User, error)
}
