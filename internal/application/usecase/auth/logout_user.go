package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/adapter"
)

// LogoutUserInput represents the input for user logout.
// With AllSessions set every refresh token of UserID is revoked.
type LogoutUserInput struct {
	UserID       uuid.UUID
	RefreshToken string
	AllSessions  bool
}

// LogoutUserUseCase revokes refresh tokens.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{tokenService: tokenService}
}

// Execute revokes the session. Logging out twice is not an error.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) error {
	if input.AllSessions && input.UserID != uuid.Nil {
		return uc.tokenService.InvalidateAllUserTokens(ctx, input.UserID)
	}
	if input.RefreshToken == "" {
		return nil
	}
	// An unknown or already revoked token leaves nothing to do.
	_ = uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken)
	return nil
}
