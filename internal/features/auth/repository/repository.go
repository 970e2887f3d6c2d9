package repository

import (
	"context"

	"messenger-client/internal/features/user/models"
)

// AuthRepository — операции входа и профиля на стороне удаленного шлюза
type AuthRepository interface {
	Login(ctx context.Context, creds models.Credentials) (*models.User, error)
	Register(ctx context.Context, creds models.Credentials) (*models.User, error)
	CompleteProfile(ctx context.Context, req models.ProfileCompletion) (*models.User, error)
	UpdateProfile(ctx context.Context, req models.ProfileUpdate) (*models.User, error)
}
