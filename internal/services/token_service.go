package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yukikurage/taskbot-api/internal/config"
	"github.com/yukikurage/taskbot-api/internal/logger"
)

var (
	ErrInvalidToken      = errors.New("invalid token")
	ErrExpiredToken      = errors.New("token expired")
	ErrUnsupportedAlg    = errors.New("unsupported signing algorithm")
	ErrEmptySigningKey   = errors.New("signing key cannot be empty")
	ErrFailedToSignToken = errors.New("failed to sign token")
)

// TokenClaims is the identity carried by an access token.
type TokenClaims struct {
	Username  string
	UserID    uint64
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type accessClaims struct {
	UserID uint64 `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HMAC-signed access tokens.
type TokenService struct {
	signingKey []byte
	method     *jwt.SigningMethodHMAC
	lifetime   time.Duration
	timeFunc   func() time.Time
}

// NewTokenService creates a TokenService from the auth configuration.
func NewTokenService(cfg config.AuthConfig) (*TokenService, error) {
	if cfg.SecretKey == "" {
		return nil, ErrEmptySigningKey
	}

	var method *jwt.SigningMethodHMAC
	switch cfg.Algorithm {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlg, cfg.Algorithm)
	}

	return &TokenService{
		signingKey: []byte(cfg.SecretKey),
		method:     method,
		lifetime:   time.Duration(cfg.AccessTokenExpireMinutes) * time.Minute,
		timeFunc:   time.Now,
	}, nil
}

// IssueToken signs a token for claims. A non-positive ttl uses the configured lifetime.
func (s *TokenService) IssueToken(ctx context.Context, claims TokenClaims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.lifetime
	}
	now := s.timeFunc()

	token := jwt.NewWithClaims(s.method, accessClaims{
		UserID: claims.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign access token",
			"error", err,
			"username", claims.Username,
			"signing_method", s.method.Alg())
		return "", fmt.Errorf("%w: %v", ErrFailedToSignToken, err)
	}

	return signed, nil
}

// DecodeToken verifies the algorithm, signature and expiry of a token and returns its claims.
func (s *TokenService) DecodeToken(ctx context.Context, tokenString string) (*TokenClaims, error) {
	log := logger.FromContext(ctx)

	token, err := jwt.ParseWithClaims(
		tokenString,
		&accessClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.timeFunc),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug("access token rejected: expired", "error", err)
			return nil, ErrExpiredToken
		}
		log.Debug("access token rejected", "error", err)
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		log.Debug("access token rejected: missing subject")
		return nil, ErrInvalidToken
	}

	out := &TokenClaims{
		Username: claims.Subject,
		UserID:   claims.UserID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
