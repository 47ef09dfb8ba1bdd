package adapters

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/integration/persistence"
	"github.com/carbon-tracker/backend/internal/integration/persistence/model"
)

func newTokenRepository(t *testing.T) persistence.TokenRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&model.RefreshTokenModel{}))
	return persistence.NewTokenRepository(db)
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "test-secret", AccessExpiry: time.Minute, RefreshExpiry: time.Hour}, newTokenRepository(t))
	ctx := context.Background()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(ctx, userID, "ops@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ops@example.com", claims.Email)

	_, err = svc.ValidateAccessToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken, "refresh token must not authenticate requests")

	_, err = svc.ValidateRefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)

	valid, err := svc.IsRefreshTokenValid(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.True(t, valid)

	require.NoError(t, svc.InvalidateRefreshToken(ctx, pair.RefreshToken))
	valid, err = svc.IsRefreshTokenValid(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.False(t, valid)

	second, err := svc.GenerateTokenPair(ctx, userID, "ops@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, second.RefreshToken)
}

func TestTokenService_Rejections(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "test-secret", AccessExpiry: time.Minute, RefreshExpiry: time.Hour}, newTokenRepository(t))
	ctx := context.Background()

	sign := func(secret string, claims jwt.Claims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}
	base := func(expires time.Time) CustomClaims {
		return CustomClaims{
			UserID:    uuid.NewString(),
			TokenType: tokenTypeAccess,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    Issuer,
				ExpiresAt: jwt.NewNumericDate(expires),
			},
		}
	}

	expired := sign("test-secret", base(time.Now().Add(-time.Minute)))
	_, err := svc.ValidateAccessToken(ctx, expired)
	assert.ErrorIs(t, err, domainerror.ErrExpiredToken)

	forged := sign("other-secret", base(time.Now().Add(time.Minute)))
	_, err = svc.ValidateAccessToken(ctx, forged)
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)

	foreign := base(time.Now().Add(time.Minute))
	foreign.Issuer = "someone-else"
	_, err = svc.ValidateAccessToken(ctx, sign("test-secret", foreign))
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)

	_, err = svc.ValidateAccessToken(ctx, "not.a.token")
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
}

func TestPasswordService(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	hash, err := svc.HashPassword("correct-horse")
	require.NoError(t, err)
	assert.NoError(t, svc.VerifyPassword(hash, "correct-horse"))
	assert.Error(t, svc.VerifyPassword(hash, "wrong-horse"))

	assert.NoError(t, svc.ValidatePasswordStrength("12345678"))
	for _, weak := range []string{"", "short", strings.Repeat("x", 73)} {
		err := svc.ValidatePasswordStrength(weak)
		assert.True(t, errors.Is(err, domainerror.ErrWeakPassword), "%q", weak)
	}
}
