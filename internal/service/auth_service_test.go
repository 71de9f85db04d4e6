package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.auth.Register(ctx, "alice", "correct horse battery")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)

	token, loggedIn, err := f.auth.Login(ctx, "alice", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := f.auth.Authenticate(ctx, "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "", "long enough password")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.auth.Register(ctx, "alice", "short")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.auth.Register(ctx, "alice", "long enough password")
	require.NoError(t, err)
	_, err = f.auth.Register(ctx, "alice", "another password 123")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.auth.Login(ctx, "ghost", "whatever password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.Register(ctx, "alice", "correct password 1")
	require.NoError(t, err)
	_, _, err = f.auth.Login(ctx, "alice", "wrong password 111")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "alice", "correct password 1")
	require.NoError(t, err)
	token, _, err := f.auth.Login(ctx, "alice", "correct password 1")
	require.NoError(t, err)

	claims, err := f.auth.Authenticate(ctx, "Bearer "+token)
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(ctx, claims.SessionID))

	_, err = f.auth.Authenticate(ctx, "Bearer "+token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPurgeExpiredSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "alice", "correct password 1")
	require.NoError(t, err)
	token, _, err := f.auth.Login(ctx, "alice", "correct password 1")
	require.NoError(t, err)

	// Nothing is expired yet.
	n, err := f.auth.PurgeExpiredSessions(ctx, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	// Fast-forward past the session TTL: the purge removes the session and
	// the still-unexpired token stops working.
	n, err = f.auth.PurgeExpiredSessions(ctx, time.Now().Add(2*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = f.auth.Authenticate(ctx, "Bearer "+token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
