// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carbon-tracker/backend/internal/application/usecase/auth"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/middleware"
)

// AuthController handles authentication endpoints.
type AuthController struct {
	registerUseCase     *auth.RegisterUserUseCase
	loginUseCase        *auth.LoginUserUseCase
	refreshTokenUseCase *auth.RefreshTokenUseCase
	logoutUseCase       *auth.LogoutUserUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(
	registerUseCase *auth.RegisterUserUseCase,
	loginUseCase *auth.LoginUserUseCase,
	refreshTokenUseCase *auth.RefreshTokenUseCase,
	logoutUseCase *auth.LogoutUserUseCase,
) *AuthController {
	return &AuthController{
		registerUseCase:     registerUseCase,
		loginUseCase:        loginUseCase,
		refreshTokenUseCase: refreshTokenUseCase,
		logoutUseCase:       logoutUseCase,
	}
}

// Register handles POST /auth/register requests.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeMissingFields))
		return
	}

	output, err := c.registerUseCase.Execute(ctx.Request.Context(), auth.RegisterUserInput{
		Email:       req.Email,
		Username:    req.Username,
		Password:    req.Password,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toAuthResponse(output))
}

// Login handles POST /auth/login requests.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeMissingFields))
		return
	}

	output, err := c.loginUseCase.Execute(ctx.Request.Context(), auth.LoginUserInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toAuthResponse(output))
}

// RefreshToken handles POST /auth/refresh requests.
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeMissingToken))
		return
	}

	pair, err := c.refreshTokenUseCase.Execute(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout handles POST /auth/logout requests. A missing or unreadable body still logs out.
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.LogoutRequest
	_ = ctx.ShouldBindJSON(&req)

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := c.logoutUseCase.Execute(ctx.Request.Context(), auth.LogoutUserInput{
		UserID:       userID,
		RefreshToken: req.RefreshToken,
		AllSessions:  req.AllSessions,
	}); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Successfully logged out"})
}

func toAuthResponse(output *auth.SessionOutput) dto.AuthResponse {
	return dto.AuthResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		User:         dto.ToUserResponse(output.User),
	}
}
