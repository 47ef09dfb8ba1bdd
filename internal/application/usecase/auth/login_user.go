package auth

import (
	"context"
	"strings"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// LoginUserInput represents the input for user login.
type LoginUserInput struct {
	Email    string
	Password string
}

// LoginUserUseCase handles password sign-in.
type LoginUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute verifies the credentials and issues a token pair.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*SessionOutput, error) {
	invalid := domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"invalid email or password",
		domainerror.ErrInvalidCredentials,
	)

	// Unknown email and wrong password are indistinguishable to the caller.
	user, err := uc.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		return nil, invalid
	}
	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, invalid
	}

	return issueSession(ctx, uc.tokenService, user)
}
