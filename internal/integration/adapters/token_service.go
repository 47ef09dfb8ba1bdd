// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/integration/persistence"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	// Issuer is stamped on and required in every token.
	Issuer = "carbon-tracker"
)

// TokenConfig configures token lifetimes and signing.
type TokenConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// CustomClaims represents the custom claims for JWT tokens.
type CustomClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// tokenService implements the adapter.TokenService interface.
type tokenService struct {
	secret          []byte
	accessExpiry    time.Duration
	refreshExpiry   time.Duration
	tokenRepository persistence.TokenRepository
}

// NewTokenService creates a new HS256 token service instance.
func NewTokenService(cfg TokenConfig, tokenRepository persistence.TokenRepository) adapter.TokenService {
	return &tokenService{
		secret:          []byte(cfg.Secret),
		accessExpiry:    cfg.AccessExpiry,
		refreshExpiry:   cfg.RefreshExpiry,
		tokenRepository: tokenRepository,
	}
}

// GenerateTokenPair signs an access and a refresh token and records the refresh token.
func (s *tokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string) (*adapter.TokenPair, error) {
	accessToken, _, err := s.sign(userID, email, tokenTypeAccess, s.accessExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, expiresAt, err := s.sign(userID, email, tokenTypeRefresh, s.refreshExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.tokenRepository.SaveRefreshToken(ctx, refreshToken, userID, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return &adapter.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *tokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return s.validate(token, tokenTypeAccess)
}

// ValidateRefreshToken validates a refresh token's signature and expiry.
func (s *tokenService) ValidateRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return s.validate(token, tokenTypeRefresh)
}

func (s *tokenService) InvalidateRefreshToken(ctx context.Context, token string) error {
	return s.tokenRepository.InvalidateRefreshToken(ctx, token)
}

func (s *tokenService) InvalidateAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	return s.tokenRepository.InvalidateAllUserRefreshTokens(ctx, userID)
}

func (s *tokenService) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	return s.tokenRepository.IsRefreshTokenValid(ctx, token)
}

func (s *tokenService) sign(userID uuid.UUID, email, tokenType string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)
	claims := CustomClaims{
		UserID:    userID.String(),
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    Issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *tokenService) validate(token, tokenType string) (*adapter.TokenClaims, error) {
	claims := &CustomClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerror.ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", domainerror.ErrInvalidToken, err)
	}

	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("%w: expected %s token", domainerror.ErrInvalidToken, tokenType)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad user id", domainerror.ErrInvalidToken)
	}

	return &adapter.TokenClaims{
		UserID:    userID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
