// Package apperr defines the error taxonomy shared by the session validator,
// the record services and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthenticated is returned when no session token was presented.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrSessionExpired is returned for unknown tokens and tokens past expiry.
	ErrSessionExpired = errors.New("session expired")
	// ErrInvalidCredentials is returned by login when email or password do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError indicates malformed create/update input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// Invalid is shorthand for a *ValidationError.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError indicates an operation on an unknown id.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NotFound is shorthand for a *NotFoundError.
func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError indicates a uniqueness violation, e.g. an email already registered.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// InternalError wraps an unexpected backend failure. The wrapped error is for logs only.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error [%s]: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

// Internal wraps err as an *InternalError unless it already belongs to the taxonomy.
func Internal(op string, err error) error {
	if err == nil {
		return nil
	}
	if Classified(err) {
		return err
	}
	return &InternalError{Op: op, Err: err}
}

// Classified reports whether err is one of the typed errors of this package.
func Classified(err error) bool {
	var (
		validation *ValidationError
		notFound   *NotFoundError
		conflict   *ConflictError
		internal   *InternalError
	)
	switch {
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrSessionExpired), errors.Is(err, ErrInvalidCredentials):
		return true
	case errors.As(err, &validation), errors.As(err, &notFound), errors.As(err, &conflict), errors.As(err, &internal):
		return true
	}
	return false
}

// HTTPStatus maps an error to its HTTP status class.
func HTTPStatus(err error) int {
	var (
		validation *ValidationError
		notFound   *NotFoundError
		conflict   *ConflictError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrSessionExpired), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the text safe to show to a client. Internal failures
// are reported generically.
func PublicMessage(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "Internal server error"
	}
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return "Not authenticated"
	case errors.Is(err, ErrSessionExpired):
		return "Session expired"
	}
	return err.Error()
}
