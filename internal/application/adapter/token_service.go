package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenPair is what a client receives after register, login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenClaims identifies the tenant a token was issued to.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService issues and checks bearer tokens. Refresh tokens are recorded so
// they can be revoked before they expire.
type TokenService interface {
	// GenerateTokenPair signs both tokens and records the refresh token.
	GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string) (*TokenPair, error)

	// ValidateAccessToken returns ErrExpiredToken or ErrInvalidToken on failure.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	// ValidateRefreshToken checks signature, type and expiry only; revocation is
	// checked by IsRefreshTokenValid.
	ValidateRefreshToken(ctx context.Context, token string) (*TokenClaims, error)

	IsRefreshTokenValid(ctx context.Context, token string) (bool, error)

	// InvalidateRefreshToken revokes a single session.
	InvalidateRefreshToken(ctx context.Context, token string) error

	// InvalidateAllUserTokens revokes every session of a user.
	InvalidateAllUserTokens(ctx context.Context, userID uuid.UUID) error
}
