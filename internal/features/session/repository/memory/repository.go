package memory

import (
	"context"
	"encoding/json"
	"sync"

	"messenger-client/internal/features/session/repository"
	"messenger-client/internal/features/user/models"
)

// sessionRepository держит сериализованную копию, как файловое хранилище
type sessionRepository struct {
	mu   sync.Mutex
	data []byte
}

func NewSessionRepository() repository.SessionStore {
	return &sessionRepository{}
}

func (r *sessionRepository) Load(ctx context.Context) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.data == nil {
		return nil, repository.ErrNoSession
	}
	var user models.User
	if err := json.Unmarshal(r.data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *sessionRepository) Save(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.data = data
	r.mu.Unlock()
	return nil
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	r.data = nil
	r.mu.Unlock()
	return nil
}
