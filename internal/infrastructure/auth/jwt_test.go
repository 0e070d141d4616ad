package auth

import (
	"testing"
	"time"

	"github.com/bazaar/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret: "0123456789abcdef0123456789abcdef",
		Issuer: "bazaar-backend",
	})
}

func TestJWTService_ValidateAccessToken(t *testing.T) {
	service := newTestService()
	userID := uuid.New()

	t.Run("valid token round-trips claims", func(t *testing.T) {
		token, err := service.GenerateAccessToken(userID, false, time.Hour)
		require.NoError(t, err)

		claims, err := service.ValidateAccessToken(token)
		require.NoError(t, err)

		assert.Equal(t, userID.String(), claims.UserID)
		assert.False(t, claims.IsAdmin)

		parsed, err := claims.GetUserUUID()
		require.NoError(t, err)
		assert.Equal(t, userID, parsed)
	})

	t.Run("admin flag survives the round trip", func(t *testing.T) {
		token, err := service.GenerateAccessToken(userID, true, time.Hour)
		require.NoError(t, err)

		claims, err := service.ValidateAccessToken(token)
		require.NoError(t, err)
		assert.True(t, claims.IsAdmin)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token, err := service.GenerateAccessToken(userID, false, -time.Minute)
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("token signed with a different secret is rejected", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret: "ffffffffffffffffffffffffffffffff",
			Issuer: "bazaar-backend",
		})
		token, err := other.GenerateAccessToken(userID, false, time.Hour)
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token from a different issuer is rejected", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret: "0123456789abcdef0123456789abcdef",
			Issuer: "someone-else",
		})
		token, err := other.GenerateAccessToken(userID, false, time.Hour)
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token without user_id is rejected", func(t *testing.T) {
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "bazaar-backend",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		token, err := raw.SignedString([]byte("0123456789abcdef0123456789abcdef"))
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrMissingUserID)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := service.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
