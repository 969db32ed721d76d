package usecase

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bogi99/evote/internal/domain"
	"github.com/bogi99/evote/internal/ports"
)

// MockPasswordService is a mock implementation of ports.PasswordService
type MockPasswordService struct {
	mock.Mock
}

func (m *MockPasswordService) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordService) VerifyPassword(password, hash string) (bool, error) {
	args := m.Called(password, hash)
	return args.Bool(0), args.Error(1)
}

// MockTokenService is a mock implementation of ports.TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(adminID int64, username string) (string, error) {
	args := m.Called(adminID, username)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) ValidateAccessToken(token string) (*ports.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.TokenClaims), args.Error(1)
}

func newTestAuthUseCase(adminRepo *MockAdminRepository, passwords *MockPasswordService, tokens *MockTokenService) *AuthUseCase {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewAuthUseCase(adminRepo, passwords, tokens, log)
}

func TestAuthUseCase_Login(t *testing.T) {
	admin := &domain.AdminUser{ID: 7, Username: "commissioner", PasswordHash: "$2a$10$stored"}

	t.Run("valid credentials issue a token", func(t *testing.T) {
		adminRepo := new(MockAdminRepository)
		passwords := new(MockPasswordService)
		tokens := new(MockTokenService)

		adminRepo.On("FindByUsername", mock.Anything, "commissioner").Return(admin, nil)
		passwords.On("VerifyPassword", "correct horse", admin.PasswordHash).Return(true, nil)
		tokens.On("GenerateAccessToken", int64(7), "commissioner").Return("signed-token", nil)

		uc := newTestAuthUseCase(adminRepo, passwords, tokens)

		response, err := uc.Login(context.Background(), LoginRequest{Username: "commissioner", Password: "correct horse"})

		assert.NoError(t, err)
		assert.Equal(t, "signed-token", response.AccessToken)
		assert.Equal(t, "commissioner", response.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		adminRepo := new(MockAdminRepository)
		passwords := new(MockPasswordService)

		adminRepo.On("FindByUsername", mock.Anything, "commissioner").Return(admin, nil)
		passwords.On("VerifyPassword", "wrong", admin.PasswordHash).Return(false, nil)

		uc := newTestAuthUseCase(adminRepo, passwords, new(MockTokenService))

		response, err := uc.Login(context.Background(), LoginRequest{Username: "commissioner", Password: "wrong"})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Nil(t, response)
	})

	t.Run("unknown username maps to the same error as a wrong password", func(t *testing.T) {
		adminRepo := new(MockAdminRepository)
		adminRepo.On("FindByUsername", mock.Anything, "nobody").Return(nil, domain.ErrAdminNotFound)

		uc := newTestAuthUseCase(adminRepo, new(MockPasswordService), new(MockTokenService))

		response, err := uc.Login(context.Background(), LoginRequest{Username: "nobody", Password: "anything"})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Nil(t, response)
	})

	t.Run("missing fields", func(t *testing.T) {
		uc := newTestAuthUseCase(new(MockAdminRepository), new(MockPasswordService), new(MockTokenService))

		_, err := uc.Login(context.Background(), LoginRequest{Username: "", Password: "x"})
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestAuthUseCase_CreateAdmin(t *testing.T) {
	adminRepo := new(MockAdminRepository)
	passwords := new(MockPasswordService)

	passwords.On("HashPassword", "secret").Return("$2a$10$hashed", nil)
	adminRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.AdminUser) bool {
		return a.Username == "commissioner" && a.PasswordHash == "$2a$10$hashed"
	})).Return(nil)

	uc := newTestAuthUseCase(adminRepo, passwords, new(MockTokenService))

	admin, err := uc.CreateAdmin(context.Background(), "commissioner", "secret")

	assert.NoError(t, err)
	assert.Equal(t, "commissioner", admin.Username)
	adminRepo.AssertExpectations(t)
}
