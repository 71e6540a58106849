package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusclubs/internal/app/models/dto"
	"github.com/yigit/campusclubs/internal/pkg/apperrors"
	"github.com/yigit/campusclubs/internal/pkg/auth"
	"github.com/yigit/campusclubs/internal/pkg/logger"
)

type errorMapping struct {
	targets []error
	status  int
	code    dto.ErrorCode
	message string
}

// errorMappings is checked in order; the first match wins.
var errorMappings = []errorMapping{
	{
		targets: []error{apperrors.ErrUserBanned},
		status:  http.StatusForbidden, code: dto.ErrorCodeAccountBanned, message: "Account is banned",
	},
	{
		targets: []error{apperrors.ErrPermissionDenied, apperrors.ErrRoleMismatch},
		status:  http.StatusForbidden, code: dto.ErrorCodeForbidden, message: "Permission denied",
	},
	{
		targets: []error{
			apperrors.ErrResourceNotFound, apperrors.ErrUserNotFound, apperrors.ErrClubNotFound,
			apperrors.ErrEventNotFound, apperrors.ErrCommentNotFound, apperrors.ErrNotificationNotFound,
		},
		status: http.StatusNotFound, code: dto.ErrorCodeResourceNotFound, message: "Resource not found",
	},
	{
		targets: []error{apperrors.ErrInvalidCredentials},
		status:  http.StatusUnauthorized, code: dto.ErrorCodeInvalidCredentials, message: "Invalid credentials",
	},
	{
		targets: []error{apperrors.ErrTokenExpired, auth.ErrExpiredToken},
		status:  http.StatusUnauthorized, code: dto.ErrorCodeExpiredToken, message: "Token expired",
	},
	{
		targets: []error{apperrors.ErrTokenInvalid, apperrors.ErrTokenNotFound, auth.ErrInvalidToken, auth.ErrInvalidFormat},
		status:  http.StatusUnauthorized, code: dto.ErrorCodeInvalidToken, message: "Invalid token",
	},
	{
		targets: []error{apperrors.ErrUnauthorized},
		status:  http.StatusUnauthorized, code: dto.ErrorCodeUnauthorized, message: "Authentication required",
	},
	{
		targets: []error{apperrors.ErrValidationFailed},
		status:  http.StatusBadRequest, code: dto.ErrorCodeValidationFailed, message: "Validation failed",
	},
	{
		targets: []error{apperrors.ErrBadRequest, apperrors.ErrInvalidPasswordResetToken},
		status:  http.StatusBadRequest, code: dto.ErrorCodeBadRequest, message: "Bad request",
	},
	{
		targets: []error{apperrors.ErrEmailAlreadyExists, apperrors.ErrStudentNumberExists, apperrors.ErrResourceAlreadyExists},
		status:  http.StatusConflict, code: dto.ErrorCodeResourceAlreadyExists, message: "Resource already exists",
	},
	{
		targets: []error{apperrors.ErrConflict, apperrors.ErrClubNameExists},
		status:  http.StatusConflict, code: dto.ErrorCodeConflict, message: "Conflict",
	},
	{
		targets: []error{apperrors.ErrUpstreamUnavailable},
		status:  http.StatusServiceUnavailable, code: dto.ErrorCodeExternalServiceError, message: "Upstream service unavailable",
	},
}

// StatusFor returns the HTTP status and error code for err.
func StatusFor(err error) (int, dto.ErrorCode, string) {
	for _, m := range errorMappings {
		for _, target := range m.targets {
			if errors.Is(err, target) {
				return m.status, m.code, m.message
			}
		}
	}
	return http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"
}

// HandleAPIError writes the error envelope for err and aborts the request.
// Unmapped errors are logged and reported as 500 without their text.
func HandleAPIError(c *gin.Context, err error) {
	status, code, fallback := StatusFor(err)

	message := fallback
	if status != http.StatusInternalServerError {
		message = apperrors.Message(err, fallback)
	} else {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
	}

	detail := dto.NewErrorDetail(code, message)
	var ce *apperrors.CustomError
	if errors.As(err, &ce) && ce.Details != nil {
		detail = detail.WithDetails(ce.Details)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

// HandleBindError reports a request body or query that failed binding.
func HandleBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}
