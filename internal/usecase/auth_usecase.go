package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/bogi99/evote/internal/domain"
	"github.com/bogi99/evote/internal/ports"
)

// LoginRequest represents an admin login attempt
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Username    string `json:"username"`
}

// AuthUseCase handles admin authentication
type AuthUseCase struct {
	adminRepo ports.AdminRepository
	passwords ports.PasswordService
	tokens    ports.TokenService
	log       *logrus.Logger
}

// NewAuthUseCase creates a new auth use case
func NewAuthUseCase(
	adminRepo ports.AdminRepository,
	passwords ports.PasswordService,
	tokens ports.TokenService,
	log *logrus.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		adminRepo: adminRepo,
		passwords: passwords,
		tokens:    tokens,
		log:       log,
	}
}

// Login verifies admin credentials and issues an access token. Unknown
// usernames and wrong passwords produce the same error.
func (uc *AuthUseCase) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if req.Username == "" {
		return nil, domain.NewValidationError("username", "required field missing")
	}
	if req.Password == "" {
		return nil, domain.NewValidationError("password", "required field missing")
	}

	admin, err := uc.adminRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	ok, err := uc.passwords.VerifyPassword(req.Password, admin.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		uc.log.WithField("username", req.Username).Warn("admin login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := uc.tokens.GenerateAccessToken(admin.ID, admin.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResponse{
		AccessToken: token,
		Username:    admin.Username,
	}, nil
}

// CreateAdmin registers an operator account with a hashed password
func (uc *AuthUseCase) CreateAdmin(ctx context.Context, username, password string) (*domain.AdminUser, error) {
	if username == "" {
		return nil, domain.NewValidationError("username", "required field missing")
	}
	if password == "" {
		return nil, domain.NewValidationError("password", "required field missing")
	}

	hash, err := uc.passwords.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &domain.AdminUser{
		Username:     username,
		PasswordHash: hash,
	}

	if err := uc.adminRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	return admin, nil
}
