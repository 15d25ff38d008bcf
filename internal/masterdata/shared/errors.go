package shared

import (
	"errors"
	"net/http"

	"github.com/kaizen-academy/kaizen-admin/internal/backend"
	internalShared "github.com/kaizen-academy/kaizen-admin/internal/shared"
)

var (
	ErrInvalidID  = errors.New("invalid ID")
	ErrValidation = errors.New("validation failed")
)

// FieldErrors maps form field names to messages.
type FieldErrors map[string]string

// ValidationError carries field-level messages from client-side checks.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// UserMessage satisfies the shared UserMessenger contract.
func (e *ValidationError) UserMessage() string {
	return "Please correct the highlighted fields."
}

// AsFieldErrors extracts field errors from err. Both local validation failures
// and backend rejections that name fields qualify.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Fields, true
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		return FieldErrors(apiErr.Fields), true
	}
	return nil, false
}

// StatusFor picks the response status used when a form is re-rendered after err.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, backend.ErrValidation), errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, internalShared.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
