package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/kaizen-academy/kaizen-admin/internal/shared"
)

// ErrValidation is matched by 400/422 responses.
var ErrValidation = errors.New("backend rejected the request")

// APIError is a non-2xx backend response.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: %s %s: status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("backend: %s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
}

// UserMessage returns the server supplied message.
func (e *APIError) UserMessage() string {
	return e.Message
}

// Unwrap lets errors.Is match the shared sentinels by status class.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return shared.ErrUnauthorized
	case http.StatusForbidden:
		return shared.ErrForbidden
	case http.StatusNotFound:
		return shared.ErrNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return ErrValidation
	}
	return nil
}

type errorBody struct {
	Message string            `json:"message"`
	Detail  string            `json:"detail"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

func newAPIError(method, path string, status int, raw []byte) *APIError {
	apiErr := &APIError{Method: method, Path: path, Status: status}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, candidate := range []string{body.Message, body.Detail, body.Error} {
			if strings.TrimSpace(candidate) != "" {
				apiErr.Message = strings.TrimSpace(candidate)
				break
			}
		}
		apiErr.Fields = body.Errors
	}
	return apiErr
}
