package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error independently of its transport status code
type Kind string

const (
	KindUnauthorized    Kind = "unauthorized"
	KindForbidden       Kind = "forbidden"
	KindInvalidArgument Kind = "invalid_argument"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindInternal        Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Kind    Kind         `json:"kind"`
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Is lets errors.Is match two AppErrors of the same kind and message.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// Common errors
var (
	ErrNotFound           = &AppError{Kind: KindNotFound, Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Kind: KindUnauthorized, Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Kind: KindForbidden, Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest         = &AppError{Kind: KindInvalidArgument, Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer     = &AppError{Kind: KindInternal, Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict           = &AppError{Kind: KindConflict, Code: http.StatusConflict, Message: "Resource already exists"}
	ErrInvalidCredentials = &AppError{Kind: KindUnauthorized, Code: http.StatusUnauthorized, Message: "Invalid email or password"}
	ErrInvalidToken       = &AppError{Kind: KindUnauthorized, Code: http.StatusUnauthorized, Message: "Invalid token"}
)

// NewAppError creates a new application error
func NewAppError(kind Kind, code int, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Kind:    KindInvalidArgument,
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a uniqueness conflict (HTTP 409)
func NewConflictError(message string) *AppError {
	return &AppError{
		Kind:    KindConflict,
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewStateConflictError reports an entity that exists but is in an
// incompatible state for the requested transition. Surfaced as 400.
func NewStateConflictError(format string, args ...any) *AppError {
	return &AppError{
		Kind:    KindConflict,
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Kind:    KindInvalidArgument,
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// KindOf returns the kind of err, KindInternal for foreign errors
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// GetAppError converts an error to AppError if possible. Foreign errors
// become a generic internal error so store details never reach the caller.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternalServer
}
