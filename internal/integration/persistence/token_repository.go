package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carbon-tracker/backend/internal/integration/persistence/model"
)

// TokenRepository defines the interface for refresh token bookkeeping.
type TokenRepository interface {
	// SaveRefreshToken records an issued refresh token.
	SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error

	// IsRefreshTokenValid checks the token exists, is unexpired and was not revoked.
	IsRefreshTokenValid(ctx context.Context, token string) (bool, error)

	// InvalidateRefreshToken revokes one refresh token.
	InvalidateRefreshToken(ctx context.Context, token string) error

	// InvalidateAllUserRefreshTokens revokes every refresh token of a user.
	InvalidateAllUserRefreshTokens(ctx context.Context, userID uuid.UUID) error

	// DeleteExpired removes tokens past their expiry.
	DeleteExpired(ctx context.Context) (int64, error)
}

// tokenRepository implements the TokenRepository interface.
type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository instance.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{
		db: db,
	}
}

func (r *tokenRepository) SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Create(&model.RefreshTokenModel{
		ID:        uuid.New(),
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}).Error
}

func (r *tokenRepository) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	var refreshToken model.RefreshTokenModel
	result := r.db.WithContext(ctx).
		Where("token = ? AND invalidated = ? AND expires_at > ?", token, false, time.Now().UTC()).
		First(&refreshToken)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, result.Error
	}
	return true, nil
}

func (r *tokenRepository) InvalidateRefreshToken(ctx context.Context, token string) error {
	return r.revoke(ctx, "token = ?", token)
}

func (r *tokenRepository) InvalidateAllUserRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	return r.revoke(ctx, "user_id = ?", userID)
}

func (r *tokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now().UTC()).
		Delete(&model.RefreshTokenModel{})
	return result.RowsAffected, result.Error
}

func (r *tokenRepository) revoke(ctx context.Context, query string, arg any) error {
	return r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where(query, arg).
		Update("invalidated", true).Error
}
