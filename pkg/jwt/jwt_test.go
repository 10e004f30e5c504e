package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(accessExpiry time.Duration) *JWTManager {
	return NewJWTManager("test-secret", accessExpiry, 24*time.Hour, "reviewdesk-test")
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	m := newTestManager(time.Hour)
	userID := uuid.New().String()

	pair, err := m.GenerateTokenPair(userID, "alex", "alex@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(3600), pair.ExpiresIn)

	claims, err := m.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alex", claims.Username)
	assert.Equal(t, "alex@example.com", claims.Email)
	assert.Equal(t, "reviewdesk-test", claims.Issuer)
}

func TestValidateExpiredToken(t *testing.T) {
	m := newTestManager(-time.Minute)

	pair, err := m.GenerateTokenPair(uuid.New().String(), "alex", "alex@example.com")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWithWrongSecret(t *testing.T) {
	m := newTestManager(time.Hour)
	other := NewJWTManager("other-secret", time.Hour, 24*time.Hour, "reviewdesk-test")

	pair, err := m.GenerateTokenPair(uuid.New().String(), "alex", "alex@example.com")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateGarbageToken(t *testing.T) {
	m := newTestManager(time.Hour)

	_, err := m.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHashRefreshTokenIsDeterministic(t *testing.T) {
	token := uuid.New().String()

	assert.Equal(t, HashRefreshToken(token), HashRefreshToken(token))
	assert.NotEqual(t, HashRefreshToken(token), HashRefreshToken(uuid.New().String()))
	assert.Len(t, HashRefreshToken(token), 64)
}
