package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"golang.org/x/crypto/bcrypt"
)

func TestJWTService_TokenRoundTrip(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)

	token, err := service.GenerateAccessToken(7, "commissioner")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateAccessToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), claims.AdminID)
	assert.Equal(t, "commissioner", claims.Username)
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)
	other := NewJWTService("different-secret", time.Hour)

	token, err := other.GenerateAccessToken(7, "commissioner")
	assert.NoError(t, err)

	claims, err := service.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	service := NewJWTService("test-secret", -time.Minute)

	token, err := service.GenerateAccessToken(7, "commissioner")
	assert.NoError(t, err)

	claims, err := service.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Nil(t, claims)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)

	claims, err := service.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestBcryptPasswordService(t *testing.T) {
	service := NewBcryptPasswordService(bcrypt.MinCost)

	hash, err := service.HashPassword("correct horse")
	assert.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	ok, err := service.VerifyPassword("correct horse", hash)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = service.VerifyPassword("wrong", hash)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptPasswordService_EmptyInput(t *testing.T) {
	service := NewBcryptPasswordService(0)

	_, err := service.HashPassword("")
	assert.Error(t, err)

	_, err = service.VerifyPassword("", "hash")
	assert.Error(t, err)
}
