// Package apperror carries the error taxonomy shared by services and
// controllers, and maps each kind to an HTTP status.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType int

const (
	InternalError ErrorType = iota
	ValidationError
	NotFoundError
	UnauthorizedError
	ForbiddenError
	InvalidCredentialsError
	UserNotFoundError
	ConflictError
)

type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status for the error type.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case ValidationError:
		return http.StatusBadRequest
	case NotFoundError, UserNotFoundError:
		return http.StatusNotFound
	case UnauthorizedError, InvalidCredentialsError:
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case ConflictError:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func New(t ErrorType, message string, err error) *AppError {
	return &AppError{Type: t, Message: message, Err: err}
}

func NewValidation(message string, err error) *AppError {
	return New(ValidationError, message, err)
}

func NewNotFound(message string) *AppError {
	return New(NotFoundError, message, nil)
}

func NewUnauthorized(message string) *AppError {
	return New(UnauthorizedError, message, nil)
}

func NewForbidden(message string) *AppError {
	return New(ForbiddenError, message, nil)
}

func NewInvalidCredentials(message string) *AppError {
	return New(InvalidCredentialsError, message, nil)
}

func NewUserNotFound(message string) *AppError {
	return New(UserNotFoundError, message, nil)
}

func NewConflict(message string, err error) *AppError {
	return New(ConflictError, message, err)
}

func NewInternal(message string, err error) *AppError {
	return New(InternalError, message, err)
}

// Is reports whether err wraps an AppError of the given type.
func Is(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}

// From returns err as an *AppError, wrapping anything else as internal.
func From(err error, fallback string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternal(fallback, err)
}
