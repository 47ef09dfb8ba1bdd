package auth

import (
	"context"
	"fmt"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// RefreshTokenUseCase rotates a refresh token into a new pair.
type RefreshTokenUseCase struct {
	tokenService adapter.TokenService
}

// NewRefreshTokenUseCase creates a new RefreshTokenUseCase instance.
func NewRefreshTokenUseCase(tokenService adapter.TokenService) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{tokenService: tokenService}
}

// Execute revokes refreshToken and returns a new pair for the same user.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*adapter.TokenPair, error) {
	claims, err := uc.tokenService.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "invalid or expired refresh token", domainerror.ErrInvalidToken)
	}

	valid, err := uc.tokenService.IsRefreshTokenValid(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to check token validity: %w", err)
	}
	if !valid {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "refresh token has been revoked", domainerror.ErrInvalidToken)
	}

	if err := uc.tokenService.InvalidateRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	pair, err := uc.tokenService.GenerateTokenPair(ctx, claims.UserID, claims.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}
	return pair, nil
}
