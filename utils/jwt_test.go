package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken(secret, "ops@clinic", RoleAdmin, time.Hour)
	require.NoError(t, err)

	role, err := ExtractRoleFromToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	_, err = ExtractRoleFromToken([]byte("other-secret"), token)
	assert.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateToken(secret, "ops@clinic", RoleAdmin, -time.Minute)
	require.NoError(t, err)

	_, err = ExtractRoleFromToken(secret, token)
	assert.Error(t, err)
}
