package mockapi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetops-dashboard/internal/model"
)

func TestLogin(t *testing.T) {
	testCases := []struct {
		name     string
		email    string
		password string
		wantErr  error
		wantRole string
	}{
		{name: "admin with test password", email: "admin@example.com", password: TestPassword, wantRole: model.RoleAdmin},
		{name: "technician with test password", email: "tech@example.com", password: TestPassword, wantRole: model.RoleTechnician},
		{name: "wrong password", email: "admin@example.com", password: "hunter2", wantErr: ErrInvalidCredentials},
		{name: "unknown email", email: "nobody@example.com", password: TestPassword, wantErr: ErrInvalidCredentials},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newTestRepo(t, Options{})
			sess, err := repo.Login(context.Background(), tc.email, tc.password)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, sess.Token)
			assert.Equal(t, tc.email, sess.User.Email)
			assert.Equal(t, tc.wantRole, sess.User.Role)
		})
	}
}

func TestRegister(t *testing.T) {
	repo := newTestRepo(t, Options{})
	ctx := context.Background()

	sess, err := repo.Register(ctx, "New Operator", "operator@example.com", "whatever")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, sess.User.Role)
	assert.NotEmpty(t, sess.Token)

	// The fresh token resolves back to the new identity.
	user, err := repo.CurrentUser(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, user.ID)

	// The new account logs in with the fixed test credential.
	_, err = repo.Login(ctx, "operator@example.com", TestPassword)
	require.NoError(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newTestRepo(t, Options{})
	_, err := repo.Register(context.Background(), "Impostor", "admin@example.com", "whatever")
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestCurrentUserUnknownToken(t *testing.T) {
	repo := newTestRepo(t, Options{})
	_, err := repo.CurrentUser(context.Background(), "mock-token-bogus")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCurrentUserExpiredSession(t *testing.T) {
	repo := newTestRepo(t, Options{SessionTTL: 10 * time.Millisecond})
	sess := loginAs(t, repo, "admin@example.com")

	time.Sleep(50 * time.Millisecond)

	_, err := repo.CurrentUser(context.Background(), sess.Token)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoginRateLimited(t *testing.T) {
	// One attempt per minute with a burst of one: the second call must trip
	// the limiter regardless of credentials.
	repo := newTestRepo(t, Options{AttemptsPerMinute: 1, AttemptBurst: 1})
	ctx := context.Background()

	_, err := repo.Login(ctx, "admin@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = repo.Login(ctx, "admin@example.com", TestPassword)
	require.ErrorIs(t, err, ErrRateLimited)

	// Other emails keep their own budget.
	_, err = repo.Login(ctx, "tech@example.com", TestPassword)
	require.NoError(t, err)
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "invalid email or password", Humanize(ErrInvalidCredentials, "fallback"))
	assert.Contains(t, Humanize(context.DeadlineExceeded, "Failed to fetch machines."), "Failed to fetch")
}
