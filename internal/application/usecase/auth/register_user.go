// Package auth contains account and session use cases.
package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// RegisterUserInput represents the input for user registration.
type RegisterUserInput struct {
	Email       string
	Username    string
	Password    string
	CompanyName string
}

// SessionOutput carries a freshly issued token pair and its user.
type SessionOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RegisterUserUseCase handles account creation.
type RegisterUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute registers the account and signs it in.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*SessionOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeMissingFields, "email and password are required", nil)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidEmail, "invalid email format", domainerror.ErrInvalidEmail)
	}

	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeWeakPassword, "password does not meet minimum requirements", domainerror.ErrWeakPassword)
	}

	// Username defaults to the local part of the email.
	username := strings.TrimSpace(input.Username)
	if username == "" {
		username = email[:strings.Index(email, "@")]
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeEmailExists, "email already registered", domainerror.ErrEmailAlreadyExists)
	}

	taken, err := uc.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}
	if taken {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeUsernameTaken, "username already taken", domainerror.ErrUsernameTaken)
	}

	passwordHash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(email, username, strings.TrimSpace(input.CompanyName), passwordHash)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return issueSession(ctx, uc.tokenService, user)
}

func issueSession(ctx context.Context, tokenService adapter.TokenService, user *entity.User) (*SessionOutput, error) {
	pair, err := tokenService.GenerateTokenPair(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}
	return &SessionOutput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}
