package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenManagerIssueAndValidate(t *testing.T) {
	m := NewTokenManager("test-secret", 30*time.Minute)

	token, err := m.Issue("a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", claims.Subject)
	require.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenManagerRejectsExpired(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)

	token, err := m.Issue("a@x.com")
	require.NoError(t, err)

	_, err = m.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManagerRejectsWrongKey(t *testing.T) {
	issuer := NewTokenManager("key-one", time.Minute)
	verifier := NewTokenManager("key-two", time.Minute)

	token, err := issuer.Issue("a@x.com")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManagerRejectsMalformed(t *testing.T) {
	m := NewTokenManager("test-secret", time.Minute)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := m.Validate(token)
		require.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}
