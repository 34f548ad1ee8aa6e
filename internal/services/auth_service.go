package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/taskbot-api/internal/models"
	"github.com/yukikurage/taskbot-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials   = errors.New("incorrect username or password")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	if !VerifyPassword(input.Password, user.HashedPassword) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(ctx, TokenClaims{Username: user.Username, UserID: user.ID}, 0)
	if err != nil {
		return "", err
	}

	return token, nil
}

// Authenticate resolves the user identified by an access token.
// Every failure is reported as ErrInvalidToken, ErrExpiredToken or ErrUserNotFound;
// storage failures are wrapped.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.DecodeToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
