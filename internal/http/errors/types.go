package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dropDatabas3/tienda/internal/auth"
	"github.com/dropDatabas3/tienda/internal/domain/repository"
)

// AppError define la estructura estándar para errores de la aplicación.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"-"` // No se serializa, usado para el header
	Err        error  `json:"-"` // Causa original, útil para logs, no se expone al cliente
}

// Error implementa la interfaz error.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap permite acceder al error original.
func (e *AppError) Unwrap() error { return e.Err }

// WithDetail agrega detalle. Devuelve una COPIA para no mutar los errores base.
func (e *AppError) WithDetail(detail string) *AppError {
	newErr := *e
	newErr.Detail = detail
	return &newErr
}

// WithCause agrega la causa original. Devuelve una COPIA.
func (e *AppError) WithCause(err error) *AppError {
	newErr := *e
	newErr.Err = err
	return &newErr
}

// Errores predefinidos. Los fallos del backing store colapsan todos en
// ErrInternal: el detalle del storage jamás se describe al cliente.
var (
	ErrBadRequest         = &AppError{HTTPStatus: http.StatusBadRequest, Code: "bad_request", Message: "Invalid request"}
	ErrInvalidCredentials = &AppError{HTTPStatus: http.StatusUnauthorized, Code: "invalid_credentials", Message: "Invalid credentials"}
	ErrUnauthorized       = &AppError{HTTPStatus: http.StatusUnauthorized, Code: "unauthorized", Message: "Authentication required"}
	ErrForbidden          = &AppError{HTTPStatus: http.StatusForbidden, Code: "forbidden", Message: "Insufficient privileges"}
	ErrNotFound           = &AppError{HTTPStatus: http.StatusNotFound, Code: "not_found", Message: "Resource not found"}
	ErrConflict           = &AppError{HTTPStatus: http.StatusConflict, Code: "conflict", Message: "Username or email already taken"}
	ErrMethodNotAllowed   = &AppError{HTTPStatus: http.StatusMethodNotAllowed, Code: "method_not_allowed", Message: "Method not allowed"}
	ErrRateLimitExceeded  = &AppError{HTTPStatus: http.StatusTooManyRequests, Code: "rate_limited", Message: "Too many requests"}
	ErrInternal           = &AppError{HTTPStatus: http.StatusInternalServerError, Code: "internal_error", Message: "Internal server error"}
)

// FromError mapea errores del núcleo (internal/auth, repository) a AppError.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return ErrInvalidCredentials
	case errors.Is(err, auth.ErrConflict):
		return ErrConflict
	case errors.Is(err, auth.ErrUnauthorized),
		errors.Is(err, auth.ErrTokenInvalid),
		errors.Is(err, auth.ErrSessionNotFound):
		return ErrUnauthorized
	case errors.Is(err, auth.ErrForbidden):
		return ErrForbidden
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrConflict):
		return ErrConflict
	case errors.Is(err, repository.ErrInvalidInput):
		return ErrBadRequest.WithDetail(err.Error())
	default:
		return ErrInternal.WithCause(err)
	}
}
