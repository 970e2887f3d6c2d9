package remote

import (
	"context"

	"messenger-client/internal/features/auth/repository"
	"messenger-client/internal/features/user/models"
	"messenger-client/internal/platform/gateway"
)

const (
	actionLogin           = "login"
	actionRegister        = "register"
	actionCompleteProfile = "complete_profile"
)

type authRequest struct {
	Action   string `json:"action"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type completeProfileRequest struct {
	Action string `json:"action"`
	models.ProfileCompletion
}

type authRepository struct {
	client *gateway.Client
}

func NewAuthRepository(client *gateway.Client) repository.AuthRepository {
	return &authRepository{
		client: client,
	}
}

func (r *authRepository) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	return r.credentials(ctx, actionLogin, creds)
}

func (r *authRepository) Register(ctx context.Context, creds models.Credentials) (*models.User, error) {
	return r.credentials(ctx, actionRegister, creds)
}

func (r *authRepository) credentials(ctx context.Context, action string, creds models.Credentials) (*models.User, error) {
	var user models.User
	body := authRequest{Action: action, Phone: creds.Phone, Password: creds.Password}
	if err := r.client.Post(ctx, r.client.Endpoints().Auth, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *authRepository) CompleteProfile(ctx context.Context, req models.ProfileCompletion) (*models.User, error) {
	var user models.User
	body := completeProfileRequest{Action: actionCompleteProfile, ProfileCompletion: req}
	if err := r.client.Post(ctx, r.client.Endpoints().Auth, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *authRepository) UpdateProfile(ctx context.Context, req models.ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := r.client.Put(ctx, r.client.Endpoints().Auth, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
