package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// UserIDKey is the context key for the authenticated user's ID.
	UserIDKey ContextKey = "user_id"
	// UserEmailKey is the context key for the authenticated user's email.
	UserEmailKey ContextKey = "user_email"
)

// AuthMiddleware provides JWT authentication middleware.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate requires a valid bearer access token and stores its subject in the context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, _ := strings.Cut(c.GetHeader("Authorization"), " ")
		token = strings.TrimSpace(token)

		if scheme == "" {
			abortUnauthorized(c, "Authorization header is required", domainerror.ErrCodeMissingToken)
			return
		}
		if !strings.EqualFold(scheme, "Bearer") || token == "" {
			abortUnauthorized(c, "Invalid authorization header format", domainerror.ErrCodeInvalidToken)
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domainerror.ErrExpiredToken) {
				abortUnauthorized(c, "Token has expired", domainerror.ErrCodeExpiredToken)
				return
			}
			abortUnauthorized(c, "Invalid or expired token", domainerror.ErrCodeInvalidToken)
			return
		}

		c.Set(string(UserIDKey), claims.UserID)
		c.Set(string(UserEmailKey), claims.Email)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string, code domainerror.AuthErrorCode) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// GetUserIDFromContext extracts the user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(string(UserIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserEmailFromContext extracts the user email from the Gin context.
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(string(UserEmailKey))
	if !exists {
		return "", false
	}
	emailStr, ok := email.(string)
	return emailStr, ok
}
