package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "claire", "ADMIN", testSecret, 15)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "claire", claims.Username)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(42, "claire", "ADMIN", testSecret, 15)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "other-secret")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAccessTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken(42, "claire", "ADMIN", testSecret, -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, testSecret)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(42, "token-id-1", testSecret, 7)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "token-id-1", claims.TokenID)
}

func TestGarbageToken(t *testing.T) {
	_, err := ValidateAccessToken("not.a.token", testSecret)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
