package mockapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"fleetops-dashboard/internal/model"
)

// TestPassword is the single credential the mock login accepts, for any
// account. Real authentication is out of scope here.
const TestPassword = "password"

// Login checks the credentials and opens a session for the matching user.
func (r *Repository) Login(ctx context.Context, email, password string) (model.Session, error) {
	if err := r.simulate(ctx, latencyLogin); err != nil {
		return model.Session{}, err
	}
	if !r.attempts.allow(strings.ToLower(email)) {
		return model.Session{}, fmt.Errorf("login attempts for %s: %w", email, ErrRateLimited)
	}

	var user model.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("login lookup: %w", err)
	}
	if password != TestPassword {
		return model.Session{}, ErrInvalidCredentials
	}
	return r.openSession(user), nil
}

// Register creates a new account with the default user role and logs it in.
func (r *Repository) Register(ctx context.Context, name, email, password string) (model.Session, error) {
	if err := r.simulate(ctx, latencyRegister); err != nil {
		return model.Session{}, err
	}
	if !r.attempts.allow(strings.ToLower(email)) {
		return model.Session{}, fmt.Errorf("register attempts for %s: %w", email, ErrRateLimited)
	}
	_ = password // accepted but not stored; login wants TestPassword

	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return model.Session{}, fmt.Errorf("register lookup: %w", err)
	}
	if count > 0 {
		return model.Session{}, ErrDuplicateEmail
	}

	user := model.User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Role:  model.RoleUser,
	}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return model.Session{}, fmt.Errorf("register: %w", err)
	}
	r.log.WithField("email", email).Debug("registered new account")
	return r.openSession(user), nil
}

// CurrentUser resolves the identity behind a bearer token. Unknown or expired
// tokens fail with ErrNotFound, which callers treat as session expiry.
func (r *Repository) CurrentUser(ctx context.Context, token string) (model.User, error) {
	if err := r.simulate(ctx, latencyWhoami); err != nil {
		return model.User{}, err
	}
	return r.caller(ctx, token)
}

func (r *Repository) openSession(user model.User) model.Session {
	token := "mock-token-" + uuid.NewString()
	r.sessions.Set(token, user.ID, cache.DefaultExpiration)
	return model.Session{Token: token, User: user}
}

// caller resolves the acting identity for operations that carry the bearer
// token. No latency of its own; the calling operation already slept.
func (r *Repository) caller(ctx context.Context, token string) (model.User, error) {
	id, ok := r.sessions.Get(token)
	if !ok {
		return model.User{}, fmt.Errorf("session: %w", ErrNotFound)
	}
	var user model.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, fmt.Errorf("session user: %w", ErrNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("whoami: %w", err)
	}
	return user, nil
}
