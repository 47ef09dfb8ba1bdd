// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Username    string `json:"username" binding:"omitempty,min=3,max=50"`
	Password    string `json:"password" binding:"required,min=8"`
	CompanyName string `json:"company_name" binding:"omitempty,max=200"`
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents the request body for user logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
	AllSessions  bool   `json:"all_sessions"`
}

// AuthResponse represents the response for authentication endpoints.
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// TokenResponse represents the response for token refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserResponse represents the user data in API responses.
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	CompanyName string    `json:"company_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToUserResponse converts a domain User entity to a UserResponse DTO.
func ToUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		Username:    user.Username,
		CompanyName: user.CompanyName,
		CreatedAt:   user.CreatedAt,
	}
}
