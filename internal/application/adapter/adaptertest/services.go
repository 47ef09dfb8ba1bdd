package adaptertest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// PasswordService stores passwords reversibly; it only exists for tests.
type PasswordService struct{}

var _ adapter.PasswordService = PasswordService{}

func (PasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (PasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

func (PasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return domainerror.ErrWeakPassword
	}
	return nil
}

// TokenService issues opaque sequential tokens.
type TokenService struct {
	mu          sync.Mutex
	seq         int
	access      map[string]adapter.TokenClaims
	refresh     map[string]adapter.TokenClaims
	invalidated map[string]bool
}

var _ adapter.TokenService = (*TokenService)(nil)

// NewTokenService creates an empty token service.
func NewTokenService() *TokenService {
	return &TokenService{
		access:      make(map[string]adapter.TokenClaims),
		refresh:     make(map[string]adapter.TokenClaims),
		invalidated: make(map[string]bool),
	}
}

func (s *TokenService) GenerateTokenPair(_ context.Context, userID uuid.UUID, email string) (*adapter.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	claims := adapter.TokenClaims{UserID: userID, Email: email, ExpiresAt: time.Now().Add(time.Hour)}
	pair := &adapter.TokenPair{
		AccessToken:  fmt.Sprintf("access-%d", s.seq),
		RefreshToken: fmt.Sprintf("refresh-%d", s.seq),
	}
	s.access[pair.AccessToken] = claims
	s.refresh[pair.RefreshToken] = claims
	return pair, nil
}

func (s *TokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.access[token]
	if !ok {
		return nil, domainerror.ErrInvalidToken
	}
	return &c, nil
}

func (s *TokenService) ValidateRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.refresh[token]
	if !ok || s.invalidated[token] {
		return nil, domainerror.ErrInvalidToken
	}
	return &c, nil
}

func (s *TokenService) InvalidateRefreshToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidated[token] = true
	return nil
}

func (s *TokenService) InvalidateAllUserTokens(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, c := range s.refresh {
		if c.UserID == userID {
			s.invalidated[token] = true
		}
	}
	return nil
}

func (s *TokenService) IsRefreshTokenValid(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.refresh[token]
	return ok && !s.invalidated[token], nil
}
