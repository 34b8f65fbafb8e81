//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"reservas-backend/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := jwt.NewService("test-secret", time.Hour)
	adminID := uuid.New()

	token, err := svc.GenerateToken(adminID, "admin@example.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, adminID, claims.AdminID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateToken(t *testing.T) {
	svc := jwt.NewService("test-secret", time.Hour)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("token signed with a different key", func(t *testing.T) {
		other := jwt.NewService("other-secret", time.Hour)
		token, err := other.GenerateToken(uuid.New(), "admin@example.com", "admin")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := jwt.NewService("test-secret", -time.Minute)
		token, err := expired.GenerateToken(uuid.New(), "admin@example.com", "admin")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})
}
