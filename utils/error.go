package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.FullPath()))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	if status >= http.StatusInternalServerError {
		Logger.Error(message, zap.String("details", details), zap.String("path", c.FullPath()))
	} else {
		Logger.Warn(message, zap.String("details", details))
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message, Details: details})
}

// Error codes shared by the service layer.
const (
	CodeInvalidInput      = "invalid_input"
	CodeNotFound          = "not_found"
	CodeForbidden         = "forbidden"
	CodeConflict          = "conflict"
	CodeInvalidTransition = "invalid_transition"
	CodeUnavailable       = "unavailable"
	CodeUnauthorized      = "unauthorized"
)

// PermissionDenied is the fixed message shown to roles that may not perform an action.
const PermissionDenied = "Permission denied"

// AppError is a domain error carrying a stable code for the HTTP layer.
type AppError struct {
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAppError builds an AppError.
func NewAppError(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Forbidden returns the fixed permission-denied error naming the roles that are allowed.
func Forbidden(allowed ...string) *AppError {
	return &AppError{Code: CodeForbidden, Message: "only " + strings.Join(allowed, ", ") + " may perform this action"}
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(code string) int {
	switch code {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeConflict, CodeInvalidTransition:
		return http.StatusConflict
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as a JSON error, using the AppError code when present.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := StatusFor(appErr.Code)
		if appErr.Code == CodeForbidden {
			JSONError(c, status, PermissionDenied, appErr.Message)
			return
		}
		JSONError(c, status, appErr.Message, err.Error())
		return
	}
	JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
}
