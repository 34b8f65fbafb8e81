//go:build unit

package password_test

import (
	"testing"

	"reservas-backend/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := password.HashPassword("secret-password")
	require.NoError(t, err)
	require.NotEqual(t, "secret-password", hash)

	assert.NoError(t, password.ComparePassword(hash, "secret-password"))
	assert.ErrorIs(t, password.ComparePassword(hash, "wrong-password"), password.ErrComparisonFailed)
}

func TestEmptyInputs(t *testing.T) {
	_, err := password.HashPassword("")
	assert.ErrorIs(t, err, password.ErrInvalidPassword)

	assert.ErrorIs(t, password.ComparePassword("", "x"), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.ComparePassword("hash", ""), password.ErrInvalidPassword)
}
