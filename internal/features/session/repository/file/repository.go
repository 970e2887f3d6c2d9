package file

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	apperrors "messenger-client/internal/common/errors"
	"messenger-client/internal/features/session/repository"
	"messenger-client/internal/features/user/models"
)

type sessionRepository struct {
	path string
}

// NewSessionRepository хранит сессию в JSON-файле path (права 0600)
func NewSessionRepository(path string) repository.SessionStore {
	return &sessionRepository{
		path: path,
	}
}

func (r *sessionRepository) Load(ctx context.Context) (*models.User, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, repository.ErrNoSession
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSession, "read session file")
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSession, "parse session file")
	}
	return &user, nil
}

// Save пишет во временный файл и переименовывает, чтобы не оставить обрезанный JSON
func (r *sessionRepository) Save(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSession, "encode session")
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSession, "create session dir")
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSession, "create temp session file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return apperrors.Wrap(err, apperrors.ErrCodeSession, "write session file")
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return apperrors.Wrap(err, apperrors.ErrCodeSession, "chmod session file")
	}
	if err := tmp.Close(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSession, "close session file")
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSession, "replace session file")
	}
	return nil
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return apperrors.Wrap(err, apperrors.ErrCodeSession, "remove session file")
	}
	return nil
}
