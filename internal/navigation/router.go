// Package navigation holds the top-level screen state machine. The router owns
// the authoritative User value and persists every change through the session
// service; screens never touch the session store directly.
package navigation

import (
	"context"
	"errors"
	"sync"

	"messenger-client/internal/common/logger"
	sessionService "messenger-client/internal/features/session/service"
	"messenger-client/internal/features/user/models"
)

// Screen is the single top-level view mounted at a time.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenProfileSetup
	ScreenMessenger
	ScreenAdmin
)

func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenProfileSetup:
		return "profile_setup"
	case ScreenMessenger:
		return "messenger"
	case ScreenAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

var (
	ErrNotAdmin     = errors.New("admin panel requires an administrator")
	ErrNotOnboarded = errors.New("profile is not completed")
	ErrNotLoggedIn  = errors.New("no active session")
	ErrUserMismatch = errors.New("user does not match the active session")
	ErrInvalidUser  = errors.New("invalid user")
)

type Router struct {
	session sessionService.SessionService

	mu        sync.RWMutex
	user      *models.User
	showAdmin bool
}

func NewRouter(session sessionService.SessionService) *Router {
	return &Router{
		session: session,
	}
}

// Restore loads the persisted session; absent or unreadable means Login.
func (r *Router) Restore(ctx context.Context) Screen {
	user := r.session.Restore(ctx)

	r.mu.Lock()
	r.user = user
	r.showAdmin = false
	r.mu.Unlock()

	return r.Screen()
}

// Screen derives the current view. Order matters: a user who has not finished
// onboarding never reaches the messenger or the admin panel.
func (r *Router) Screen() Screen {
	r.mu.RLock()
	defer r.mu.RUnlock()

	switch {
	case r.user == nil:
		return ScreenLogin
	case !r.user.IsProfileCompleted:
		return ScreenProfileSetup
	case r.showAdmin && r.user.IsAdmin:
		return ScreenAdmin
	default:
		return ScreenMessenger
	}
}

// User returns a copy of the session user, nil when anonymous.
func (r *Router) User() *models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.user == nil {
		return nil
	}
	u := *r.user
	return &u
}

// CanOpenAdmin reports whether the admin entry point is exposed.
func (r *Router) CanOpenAdmin() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.user != nil && r.user.IsProfileCompleted && r.user.IsAdmin
}

// LoggedIn stores the authenticated user. The next screen depends on
// is_profile_completed only.
func (r *Router) LoggedIn(ctx context.Context, user *models.User) (Screen, error) {
	if user == nil || user.ID <= 0 {
		return r.Screen(), ErrInvalidUser
	}
	return r.store(ctx, user, false)
}

// ProfileCompleted moves an onboarding user into the messenger.
func (r *Router) ProfileCompleted(ctx context.Context, user *models.User) (Screen, error) {
	if err := r.sameUser(user); err != nil {
		return r.Screen(), err
	}
	u := *user
	u.IsProfileCompleted = true
	return r.store(ctx, &u, false)
}

// ProfileUpdated replaces the cached user after a settings change.
func (r *Router) ProfileUpdated(ctx context.Context, user *models.User) (Screen, error) {
	if err := r.sameUser(user); err != nil {
		return r.Screen(), err
	}
	r.mu.RLock()
	keepAdmin := r.showAdmin
	r.mu.RUnlock()
	return r.store(ctx, user, keepAdmin)
}

func (r *Router) OpenAdmin() (Screen, error) {
	r.mu.Lock()
	switch {
	case r.user == nil:
		r.mu.Unlock()
		return r.Screen(), ErrNotLoggedIn
	case !r.user.IsProfileCompleted:
		r.mu.Unlock()
		return r.Screen(), ErrNotOnboarded
	case !r.user.IsAdmin:
		r.mu.Unlock()
		return r.Screen(), ErrNotAdmin
	}
	r.showAdmin = true
	r.mu.Unlock()
	return r.Screen(), nil
}

func (r *Router) CloseAdmin() Screen {
	r.mu.Lock()
	r.showAdmin = false
	r.mu.Unlock()
	return r.Screen()
}

// Logout clears the session from any state. The in-memory state is reset even
// when the store fails, so the UI always returns to Login.
func (r *Router) Logout(ctx context.Context) (Screen, error) {
	var userID int64
	r.mu.Lock()
	if r.user != nil {
		userID = r.user.ID
	}
	r.user = nil
	r.showAdmin = false
	r.mu.Unlock()

	err := r.session.Clear(ctx)
	logger.Info().Int64("user_id", userID).Msg("User logged out")
	return ScreenLogin, err
}

func (r *Router) store(ctx context.Context, user *models.User, showAdmin bool) (Screen, error) {
	u := *user

	r.mu.Lock()
	r.user = &u
	r.showAdmin = showAdmin && u.IsAdmin
	r.mu.Unlock()

	err := r.session.Save(ctx, &u)
	screen := r.Screen()
	logger.Debug().Int64("user_id", u.ID).Str("screen", screen.String()).Msg("Route changed")
	return screen, err
}

func (r *Router) sameUser(user *models.User) error {
	if user == nil {
		return ErrInvalidUser
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.user == nil {
		return ErrNotLoggedIn
	}
	if r.user.ID != user.ID {
		return ErrUserMismatch
	}
	return nil
}
