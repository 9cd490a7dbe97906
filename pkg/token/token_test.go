package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParseRoundTrip(t *testing.T) {
	Configure("test-secret", time.Hour)

	signed, expiresAt, err := SignAccessToken(42, "user@example.com", "USER")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := ParseAccessToken(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "USER", claims.Role)
}

func TestParseRejectsTamperedToken(t *testing.T) {
	Configure("test-secret", time.Hour)

	signed, _, err := SignAccessToken(1, "a@example.com", "USER")
	require.NoError(t, err)

	_, err = ParseAccessToken(signed + "x")
	assert.Error(t, err)
}

func TestParseRejectsForeignKey(t *testing.T) {
	Configure("secret-one", time.Hour)
	signed, _, err := SignAccessToken(1, "a@example.com", "USER")
	require.NoError(t, err)

	Configure("secret-two", time.Hour)
	_, err = ParseAccessToken(signed)
	assert.Error(t, err)
}

func TestRefreshTokenHashing(t *testing.T) {
	raw, hash, err := NewRefreshToken()
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
	assert.Equal(t, hash, HashRefreshToken(raw))

	other, _, err := NewRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, raw, other)
}
