// Package apperr carries an HTTP status and a stable machine-readable code
// alongside an error, so handlers can render {"error","message"} bodies.
package apperr

import (
	"errors"
	"net/http"
)

type AppError struct {
	Code    string `json:"error"`
	Message string `json:"message"`
	Err     error  `json:"-"`
	status  int
}

func New(status int, code, msg string, err error) *AppError {
	return &AppError{Code: code, Message: msg, Err: err, status: status}
}

// Constructor builds an AppError with a fixed status.
type Constructor func(code, msg string, err error) *AppError

func withStatus(status int) Constructor {
	return func(code, msg string, err error) *AppError {
		return New(status, code, msg, err)
	}
}

var (
	BadRequest      = withStatus(http.StatusBadRequest)
	Unauthorized    = withStatus(http.StatusUnauthorized)
	Forbidden       = withStatus(http.StatusForbidden)
	NotFound        = withStatus(http.StatusNotFound)
	Conflict        = withStatus(http.StatusConflict)
	TooManyRequests = withStatus(http.StatusTooManyRequests)
	Internal        = withStatus(http.StatusInternalServerError)
	Unavailable     = withStatus(http.StatusServiceUnavailable)
)

func (e *AppError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Message != "":
		return e.Message
	case e.Code != "":
		return e.Code
	case e.Err != nil:
		return e.Err.Error()
	}
	return http.StatusText(e.StatusCode())
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// StatusCode defaults to 500 for a nil or zero-status error.
func (e *AppError) StatusCode() int {
	if e == nil || e.status == 0 {
		return http.StatusInternalServerError
	}
	return e.status
}

// Retryable reports whether a client may repeat the same request later.
func (e *AppError) Retryable() bool {
	switch e.StatusCode() {
	case http.StatusConflict, http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return e.Code != "already_voted"
	}
	return false
}

// FromError finds an AppError anywhere in err's chain, or wraps err as a 500.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("internal_error", http.StatusText(http.StatusInternalServerError), err)
}
