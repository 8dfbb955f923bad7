package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetops-dashboard/internal/db"
	"fleetops-dashboard/internal/mockapi"
	"fleetops-dashboard/internal/model"
)

func newBackend(t *testing.T) *mockapi.Repository {
	t.Helper()
	gormDB, err := db.Open()
	require.NoError(t, err)
	repo := mockapi.New(gormDB, mockapi.Options{})
	require.NoError(t, repo.Seed())
	return repo
}

func TestBootstrapWithoutToken(t *testing.T) {
	c := New(newBackend(t), &MemTokenStore{})
	assert.True(t, c.IsLoading())

	require.NoError(t, c.Bootstrap(context.Background()))

	assert.Nil(t, c.User())
	assert.Empty(t, c.Token())
	assert.False(t, c.IsLoading())
	assert.Empty(t, c.LastError())
}

func TestBootstrapStaleTokenIsSilentlyDiscarded(t *testing.T) {
	tokens := &MemTokenStore{Token: "mock-token-bogus"}
	c := New(newBackend(t), tokens)

	var notified bool
	c.OnAuthenticated(func(model.User) { notified = true })

	require.NoError(t, c.Bootstrap(context.Background()))

	assert.Nil(t, c.User())
	assert.Empty(t, c.LastError())
	assert.False(t, c.IsLoading())
	assert.False(t, notified)
	assert.Empty(t, tokens.Token, "stale token must be cleared from storage")
}

func TestBootstrapResumesValidSession(t *testing.T) {
	repo := newBackend(t)
	sess, err := repo.Login(context.Background(), "tech@example.com", mockapi.TestPassword)
	require.NoError(t, err)

	c := New(repo, &MemTokenStore{Token: sess.Token})
	var got model.User
	c.OnAuthenticated(func(u model.User) { got = u })

	require.NoError(t, c.Bootstrap(context.Background()))

	require.NotNil(t, c.User())
	assert.Equal(t, model.RoleTechnician, c.User().Role)
	assert.Equal(t, sess.Token, c.Token())
	assert.Equal(t, "2", got.ID)
}

func TestLogin(t *testing.T) {
	tokens := &MemTokenStore{}
	c := New(newBackend(t), tokens)

	var got model.User
	c.OnAuthenticated(func(u model.User) { got = u })

	require.NoError(t, c.Login(context.Background(), "admin@example.com", mockapi.TestPassword))

	require.NotNil(t, c.User())
	assert.Equal(t, model.RoleAdmin, c.User().Role)
	assert.Equal(t, "Admin User", got.Name)
	assert.NotEmpty(t, c.Token())
	assert.Equal(t, c.Token(), tokens.Token, "token must be persisted")
	assert.False(t, c.IsLoading())
	assert.Empty(t, c.LastError())
}

func TestLoginFailure(t *testing.T) {
	c := New(newBackend(t), &MemTokenStore{})

	err := c.Login(context.Background(), "admin@example.com", "wrong")
	require.ErrorIs(t, err, mockapi.ErrInvalidCredentials)

	assert.Nil(t, c.User())
	assert.Empty(t, c.Token())
	assert.Equal(t, mockapi.ErrInvalidCredentials.Error(), c.LastError())

	c.ClearError()
	assert.Empty(t, c.LastError())
}

func TestRegister(t *testing.T) {
	c := New(newBackend(t), &MemTokenStore{})

	require.NoError(t, c.Register(context.Background(), "New Operator", "operator@example.com", "whatever"))

	require.NotNil(t, c.User())
	assert.Equal(t, model.RoleUser, c.User().Role)
	assert.Equal(t, "operator@example.com", c.User().Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	c := New(newBackend(t), &MemTokenStore{})

	err := c.Register(context.Background(), "Impostor", "admin@example.com", "whatever")
	require.ErrorIs(t, err, mockapi.ErrDuplicateEmail)
	assert.Equal(t, mockapi.ErrDuplicateEmail.Error(), c.LastError())
	assert.Nil(t, c.User())
}

func TestLogout(t *testing.T) {
	tokens := &MemTokenStore{}
	c := New(newBackend(t), tokens)
	require.NoError(t, c.Login(context.Background(), "user@example.com", mockapi.TestPassword))

	c.Logout()

	assert.Nil(t, c.User())
	assert.Empty(t, c.Token())
	assert.Empty(t, tokens.Token)
}

func TestFileTokenStore(t *testing.T) {
	store := FileTokenStore{Path: filepath.Join(t.TempDir(), "nested", "token")}

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token, "absent file means anonymous")

	require.NoError(t, store.Save("mock-token-abc"))
	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "mock-token-abc", token)

	require.NoError(t, store.Clear())
	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}
