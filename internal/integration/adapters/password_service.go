package adapters

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

const (
	// DefaultBcryptCost is used in production.
	DefaultBcryptCost = 12

	minPasswordLength = 8
	// bcrypt ignores input beyond 72 bytes.
	maxPasswordBytes = 72
)

// passwordService implements the adapter.PasswordService interface.
type passwordService struct {
	cost int
}

// NewPasswordService creates a bcrypt password service. A cost outside bcrypt's
// bounds falls back to DefaultBcryptCost.
func NewPasswordService(cost int) adapter.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &passwordService{cost: cost}
}

func (s *passwordService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *passwordService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func (s *passwordService) ValidatePasswordStrength(password string) error {
	switch {
	case len(password) < minPasswordLength:
		return fmt.Errorf("%w: must be at least %d characters", domainerror.ErrWeakPassword, minPasswordLength)
	case len(password) > maxPasswordBytes:
		return fmt.Errorf("%w: must be at most %d bytes", domainerror.ErrWeakPassword, maxPasswordBytes)
	}
	return nil
}
