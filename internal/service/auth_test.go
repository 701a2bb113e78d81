package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pageza/mealmate/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTokenValid(t *testing.T) {
	svc := NewAuthService("test-secret")
	token, err := svc.GenerateToken(&types.TokenClaims{UserID: "auth0|abc", Nickname: "tester"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "auth0|abc", claims.UserID)
	assert.Equal(t, "tester", claims.Nickname)
}

func TestValidateTokenFallsBackToSubject(t *testing.T) {
	svc := NewAuthService("test-secret")
	token, err := svc.GenerateToken(&types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "google|42"},
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "google|42", claims.UserID)
}

func TestValidateTokenInvalid(t *testing.T) {
	svc := NewAuthService("test-secret")

	claims, err := svc.ValidateToken("invalid.token")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err := NewAuthService("other-secret").GenerateToken(&types.TokenClaims{UserID: "u1"})
	require.NoError(t, err)
	_, err = svc.ValidateToken(other)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := svc.GenerateToken(&types.TokenClaims{
		UserID:           "u1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
	})
	require.NoError(t, err)
	_, err = svc.ValidateToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	anonymous, err := svc.GenerateToken(&types.TokenClaims{})
	require.NoError(t, err)
	_, err = svc.ValidateToken(anonymous)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
