package service_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantrymatch/backend/internal/service"
	"github.com/pageza/pantrymatch/backend/internal/types"
)

func TestGenerateAndValidateToken(t *testing.T) {
	authSvc := service.NewAuthService("test-secret")
	userID := uuid.New()

	token, err := authSvc.GenerateToken(userID, "tester")
	require.NoError(t, err)

	claims, err := authSvc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "tester", claims.Username)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := service.NewAuthService("secret-a").GenerateToken(uuid.New(), "tester")
	require.NoError(t, err)

	_, err = service.NewAuthService("secret-b").ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		UserID: uuid.New(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = service.NewAuthService("test-secret").ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestValidateToken_MissingUserID(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = service.NewAuthService("test-secret").ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := service.NewAuthService("test-secret").ValidateToken("not-a-token")
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}
