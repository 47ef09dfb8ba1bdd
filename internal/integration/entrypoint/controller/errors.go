package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/validation"
)

const internalErrorMessage = "An internal error occurred"

// respondBindError answers a request whose body or query failed to bind.
// Field failures name the offending field; anything else is a malformed request.
func respondBindError(ctx *gin.Context, err error, code string) {
	if fe, ok := validation.FirstFieldError(err); ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: fe.Field + " " + fe.Reason,
			Code:  code,
			Field: fe.Field,
		})
		return
	}
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request body",
		Code:    code,
		Details: err.Error(),
	})
}

// respondError maps domain errors to HTTP responses. Unrecognised errors and
// persistence failures are logged and answered with a generic 500.
func respondError(ctx *gin.Context, err error) {
	var (
		authErr      *domainerror.AuthError
		emissionErr  *domainerror.EmissionError
		undefined    *domainerror.UnitUndefinedError
		incompatible *domainerror.IncompatibleDimensionsError
	)

	switch {
	case errors.As(err, &authErr):
		status := authStatus(authErr.Code)
		if status == http.StatusInternalServerError {
			internalError(ctx, err)
			return
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})

	case errors.As(err, &emissionErr):
		status := emissionStatus(emissionErr.Code)
		if status == http.StatusInternalServerError {
			internalError(ctx, err)
			return
		}
		resp := dto.ErrorResponse{
			Error: emissionErr.Message,
			Code:  string(emissionErr.Code),
			Field: emissionErr.Field,
		}
		if emissionErr.Err != nil {
			resp.Details = emissionErr.Err.Error()
		}
		ctx.JSON(status, resp)

	case errors.As(err, &undefined):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: undefined.Error(),
			Code:  string(undefined.Code()),
		})

	case errors.As(err, &incompatible):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: incompatible.Error(),
			Code:  string(incompatible.Code()),
		})

	default:
		internalError(ctx, err)
	}
}

func internalError(ctx *gin.Context, err error) {
	slog.Error("Request failed",
		"method", ctx.Request.Method,
		"path", ctx.FullPath(),
		"error", err,
	)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: internalErrorMessage,
	})
}

func emissionStatus(code domainerror.EmissionErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidInput,
		domainerror.ErrCodeInvalidDateRange,
		domainerror.ErrCodeCalculationFailed,
		domainerror.ErrCodeInvalidFactor:
		return http.StatusBadRequest
	case domainerror.ErrCodeFactorNotFound,
		domainerror.ErrCodeReportNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func authStatus(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists,
		domainerror.ErrCodeUsernameTaken:
		return http.StatusConflict
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeUserNotFound,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// requireUser reads the authenticated user, answering 401 when absent.
func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Unauthorized",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
	}
	return id, ok
}
