// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// UserModel represents the users table in the database.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(120);uniqueIndex;not null"`
	Username     string    `gorm:"type:varchar(80);uniqueIndex;not null"`
	CompanyName  string    `gorm:"type:varchar(120)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:           m.ID,
		Email:        m.Email,
		Username:     m.Username,
		CompanyName:  m.CompanyName,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// UserFromEntity creates a UserModel from a domain User entity.
func UserFromEntity(user *entity.User) *UserModel {
	return &UserModel{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		CompanyName:  user.CompanyName,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// RefreshTokenModel represents the refresh_tokens table for token revocation tracking.
type RefreshTokenModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token       string    `gorm:"type:varchar(500);uniqueIndex;not null"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Invalidated bool      `gorm:"default:false"`
	ExpiresAt   time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the RefreshTokenModel.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}
