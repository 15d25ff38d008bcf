// Package httpx provides JSON response helpers for the dashboard's fetch endpoints.
package httpx

import (
	"errors"
	"net/http"

	"github.com/kaizen-academy/kaizen-admin/internal/backend"
	"github.com/kaizen-academy/kaizen-admin/internal/shared"
)

// ErrBadRequest marks malformed query input on JSON endpoints.
var ErrBadRequest = errors.New("bad request")

// RespondError maps errors to RFC7807 responses.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case shared.IsAuthError(err):
		Problem(w, http.StatusUnauthorized, "Unauthorized", shared.SessionExpiredMessage)
	case errors.Is(err, shared.ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", shared.UserSafeMessage(err))
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", shared.UserSafeMessage(err))
	case errors.Is(err, ErrBadRequest), errors.Is(err, backend.ErrValidation):
		Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
	default:
		Problem(w, http.StatusBadGateway, "Upstream Error", shared.UserSafeMessage(err))
	}
}
