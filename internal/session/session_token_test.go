package session_test

import (
	"testing"
	"time"

	"go-roster/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestTokenSigner(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	signer := session.NewTokenSigner("secret", time.Hour, clock)

	token, expiresAt, err := signer.Sign("sid-1")
	assert.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	t.Run("round trip", func(t *testing.T) {
		sid, exp, err := signer.Parse(token)
		assert.NoError(t, err)
		assert.Equal(t, "sid-1", sid)
		assert.True(t, exp.Equal(expiresAt))
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := session.NewTokenSigner("other", time.Hour, clock)
		_, _, err := other.Parse(token)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		later := session.NewTokenSigner("secret", time.Hour, func() time.Time { return now.Add(2 * time.Hour) })
		_, _, err := later.Parse(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("garbage", func(t *testing.T) {
		_, _, err := signer.Parse("not-a-token")
		assert.Error(t, err)
	})
}
