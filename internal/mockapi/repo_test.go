package mockapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"fleetops-dashboard/internal/db"
	"fleetops-dashboard/internal/model"
)

// newTestRepo builds a fully seeded repository with latency disabled. Every
// test gets its own isolated in-memory database.
func newTestRepo(t *testing.T, opts Options) *Repository {
	t.Helper()
	gormDB, err := db.Open()
	require.NoError(t, err)
	repo := New(gormDB, opts)
	require.NoError(t, repo.Seed())
	return repo
}

// loginAs opens a session for one of the seed accounts.
func loginAs(t *testing.T, repo *Repository, email string) model.Session {
	t.Helper()
	sess, err := repo.Login(context.Background(), email, TestPassword)
	require.NoError(t, err)
	return sess
}
