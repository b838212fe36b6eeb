package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	manager := NewManager("test-secret", time.Hour)

	token, err := manager.GenerateToken("42", "user@example.com", "shopper")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "42", claims.UserID)
	require.Equal(t, "user@example.com", claims.Email)
	require.Equal(t, "shopper", claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	manager := NewManager("secret-a", time.Hour)
	other := NewManager("secret-b", time.Hour)

	token, err := manager.GenerateToken("1", "a@b.c", "admin")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	t.Parallel()

	manager := NewManager("test-secret", -time.Minute)

	token, err := manager.GenerateToken("1", "a@b.c", "shopper")
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Parallel()

	manager := NewManager("test-secret", time.Hour)

	_, err := manager.ValidateToken("not-a-token")
	require.Error(t, err)
}
