package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueParseRoundTrip(t *testing.T) {
	a := New("test-secret", time.Hour)

	token, err := a.Issue(42, "session-1", time.Now())
	require.NoError(t, err)

	claims, err := a.ParseAuthHeader("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "session-1", claims.SessionID)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	a := New("test-secret", time.Hour)

	token, err := a.Issue(42, "session-1", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = a.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	a := New("test-secret", time.Hour)
	other := New("other-secret", time.Hour)

	token, err := other.Issue(42, "session-1", time.Now())
	require.NoError(t, err)

	_, err = a.Parse(token)
	assert.Error(t, err)
}

func TestParseAuthHeaderErrors(t *testing.T) {
	a := New("test-secret", time.Hour)

	_, err := a.ParseAuthHeader("")
	assert.ErrorIs(t, err, ErrMissingAuthorization)

	_, err = a.ParseAuthHeader("Basic dXNlcjpwYXNz")
	assert.ErrorIs(t, err, ErrBadAuthorization)

	_, err = a.ParseAuthHeader("Bearer ")
	assert.ErrorIs(t, err, ErrBadAuthorization)

	_, err = a.ParseAuthHeader("Bearer not-a-token")
	assert.Error(t, err)
}
