// Package session owns the current authenticated identity and bearer token.
// The domain state containers subscribe to its authenticated event to trigger
// their initial fetches.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"fleetops-dashboard/internal/mockapi"
	"fleetops-dashboard/internal/model"
)

// AuthAPI is the slice of the data access layer the session container needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (model.Session, error)
	Register(ctx context.Context, name, email, password string) (model.Session, error)
	CurrentUser(ctx context.Context, token string) (model.User, error)
}

// Container holds the session state for the process: identity, token, and
// the error/loading flags the presentation layer binds to.
type Container struct {
	api    AuthAPI
	tokens TokenStore
	log    *logrus.Entry

	mu        sync.RWMutex
	user      *model.User
	token     string
	isLoading bool
	lastError string

	subMu       sync.Mutex
	subscribers []func(model.User)
}

// New builds an anonymous container. It reports loading until Bootstrap has
// resolved any persisted token.
func New(api AuthAPI, tokens TokenStore) *Container {
	return &Container{
		api:       api,
		tokens:    tokens,
		log:       logrus.WithField("component", "session"),
		isLoading: true,
	}
}

// OnAuthenticated registers a callback fired on every transition into the
// authenticated state, including a successful bootstrap. Callbacks run on the
// transitioning goroutine in registration order; register before Bootstrap.
func (c *Container) OnAuthenticated(fn func(model.User)) {
	c.subMu.Lock()
	c.subscribers = append(c.subscribers, fn)
	c.subMu.Unlock()
}

// Bootstrap resolves a previously persisted token, if any. A token that no
// longer resolves is discarded without surfacing an error; the session simply
// starts anonymous.
func (c *Container) Bootstrap(ctx context.Context) error {
	defer c.doneLoading()

	token, err := c.tokens.Load()
	if err != nil {
		return fmt.Errorf("read persisted token: %w", err)
	}
	if token == "" {
		return nil
	}

	user, err := c.api.CurrentUser(ctx, token)
	if err != nil {
		c.log.WithError(err).Info("persisted session no longer valid, clearing token")
		if err := c.tokens.Clear(); err != nil {
			c.log.WithError(err).Warn("failed to clear persisted token")
		}
		return nil
	}

	c.mu.Lock()
	c.user = &user
	c.token = token
	c.mu.Unlock()
	c.notifyAuthenticated(user)
	return nil
}

// Login authenticates and persists the returned token. The failure message is
// recorded in LastError and the error is also returned so the initiating
// caller can react directly.
func (c *Container) Login(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "Login failed. Please try again.",
		func(ctx context.Context) (model.Session, error) {
			return c.api.Login(ctx, email, password)
		})
}

// Register creates an account and logs it in. Same error contract as Login.
func (c *Container) Register(ctx context.Context, name, email, password string) error {
	return c.authenticate(ctx, "Registration failed. Please try again.",
		func(ctx context.Context) (model.Session, error) {
			return c.api.Register(ctx, name, email, password)
		})
}

func (c *Container) authenticate(ctx context.Context, fallback string, call func(context.Context) (model.Session, error)) error {
	c.mu.Lock()
	c.isLoading = true
	c.mu.Unlock()

	sess, err := call(ctx)
	if err != nil {
		c.mu.Lock()
		c.isLoading = false
		c.lastError = mockapi.Humanize(err, fallback)
		c.mu.Unlock()
		return err
	}

	if err := c.tokens.Save(sess.Token); err != nil {
		c.log.WithError(err).Warn("failed to persist token")
	}
	user := sess.User
	c.mu.Lock()
	c.user = &user
	c.token = sess.Token
	c.isLoading = false
	c.lastError = ""
	c.mu.Unlock()
	c.notifyAuthenticated(user)
	return nil
}

// Logout drops the identity and the persisted token. No backend call.
func (c *Container) Logout() {
	if err := c.tokens.Clear(); err != nil {
		c.log.WithError(err).Warn("failed to clear persisted token")
	}
	c.mu.Lock()
	c.user = nil
	c.token = ""
	c.mu.Unlock()
}

// ClearError resets the error without touching the identity.
func (c *Container) ClearError() {
	c.mu.Lock()
	c.lastError = ""
	c.mu.Unlock()
}

// User returns a copy of the current identity, or nil when anonymous.
func (c *Container) User() *model.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// Token returns the current bearer token, empty when anonymous.
func (c *Container) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Container) IsLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isLoading
}

func (c *Container) LastError() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Container) doneLoading() {
	c.mu.Lock()
	c.isLoading = false
	c.mu.Unlock()
}

func (c *Container) notifyAuthenticated(user model.User) {
	c.subMu.Lock()
	subs := make([]func(model.User), len(c.subscribers))
	copy(subs, c.subscribers)
	c.subMu.Unlock()
	for _, fn := range subs {
		fn(user)
	}
}
