package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller does not own the requested resource.
var ErrForbidden = errors.New("forbidden")

// ErrStateConflict indicates a business-rule violation (e.g. insufficient gold
// balance, custom rate not configured). The request was well formed but the
// current state does not permit it.
var ErrStateConflict = errors.New("state conflict")

// ErrUpstream indicates that an external price feed could not be reached.
// Retried only by the next scheduled tick, never synchronously.
var ErrUpstream = errors.New("upstream fetch failed")

// ErrRateUnavailable indicates that no gold rate could be produced: the
// upstream fetch failed, no cache is populated and no durable snapshot exists.
var ErrRateUnavailable = errors.New("gold rate unavailable")

// AppError carries an HTTP-like status code alongside the wrapped cause.
// Used by the repository layer for persistence failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
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
