package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager_SessionToken(t *testing.T) {
	tm := NewTokenManager(testSecret)

	t.Run("Round trip", func(t *testing.T) {
		token, err := tm.GenerateSessionToken("session-1", time.Hour)
		require.NoError(t, err)

		claims, err := tm.ValidateSessionToken(token)
		require.NoError(t, err)
		assert.Equal(t, "session-1", claims.SessionID)
		assert.Equal(t, TokenTypeFormSession, claims.Type)
	})

	t.Run("Expired", func(t *testing.T) {
		past := &tokenManager{secret: []byte(testSecret), now: func() time.Time { return time.Now().Add(-2 * time.Hour) }}
		token, err := past.GenerateSessionToken("session-1", time.Hour)
		require.NoError(t, err)

		_, err = tm.ValidateSessionToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		other := NewTokenManager("another-secret-another-secret-xx")
		token, err := other.GenerateSessionToken("session-1", time.Hour)
		require.NoError(t, err)

		_, err = tm.ValidateSessionToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := tm.ValidateSessionToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Wrong type", func(t *testing.T) {
		claims := SessionClaims{
			SessionID: "session-1",
			Type:      "access",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				Audience:  jwt.ClaimStrings{sessionAudience},
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = tm.ValidateSessionToken(token)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})

	t.Run("Wrong audience", func(t *testing.T) {
		claims := SessionClaims{
			SessionID: "session-1",
			Type:      TokenTypeFormSession,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				Audience:  jwt.ClaimStrings{"api-access"},
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = tm.ValidateSessionToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
