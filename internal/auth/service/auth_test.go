package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "b8a3c2267dc85f855dea9b46b452bf20"

func TestTokenGenerator_GenerateTokens(t *testing.T) {
	tg := NewTokenGenerator(testSecret, time.Hour, 7*24*time.Hour)

	accessToken, refreshToken, err := tg.GenerateTokens(42, 2)
	require.NoError(t, err)
	assert.NotEqual(t, accessToken, refreshToken)

	userID, role, err := tg.ValidateAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
	assert.Equal(t, 2, role)

	refreshUserID, err := tg.ValidateRefreshToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, 42, refreshUserID)
}

func TestTokenGenerator_ValidateAccessToken(t *testing.T) {
	tg := NewTokenGenerator(testSecret, time.Hour, 24*time.Hour)
	_, refreshToken, err := tg.GenerateTokens(1, 1)
	require.NoError(t, err)

	expired := NewTokenGenerator(testSecret, time.Hour, 24*time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _, err := expired.GenerateTokens(1, 1)
	require.NoError(t, err)

	otherSecret := NewTokenGenerator("another-secret", time.Hour, time.Hour)
	foreignToken, _, err := otherSecret.GenerateTokens(1, 1)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": 1, "role": 1, "type": "access",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name          string
		token         string
		errorContains string
	}{
		{name: "malformed", token: "not-a-token", errorContains: "failed to parse token"},
		{name: "refresh token used as access", token: refreshToken, errorContains: "token type is not \"access\""},
		{name: "expired", token: expiredToken, errorContains: "failed to parse token"},
		{name: "wrong secret", token: foreignToken, errorContains: "failed to parse token"},
		{name: "unsigned", token: noneToken, errorContains: "failed to parse token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tg.ValidateAccessToken(tt.token)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestTokenGenerator_ValidateRefreshToken(t *testing.T) {
	tg := NewTokenGenerator(testSecret, time.Hour, 24*time.Hour)
	accessToken, _, err := tg.GenerateTokens(5, 3)
	require.NoError(t, err)

	_, err = tg.ValidateRefreshToken(accessToken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token type is not \"refresh\"")
}
