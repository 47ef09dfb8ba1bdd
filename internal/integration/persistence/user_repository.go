// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/integration/persistence/model"
)

// userRepository implements the adapter.UserRepository interface.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance.
func NewUserRepository(db *gorm.DB) adapter.UserRepository {
	return &userRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(model.UserFromEntity(user)).Error
}

// FindByID retrieves a user by their ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByEmail retrieves a user by their email address.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// ExistsByEmail checks if a user with the given email exists.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

// ExistsByUsername checks if a user with the given username exists.
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var userModel model.UserModel
	result := r.db.WithContext(ctx).Where(query, arg).First(&userModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrUserNotFound
		}
		return nil, result.Error
	}
	return userModel.ToEntity(), nil
}

func (r *userRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.UserModel{}).Where(query, arg).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
