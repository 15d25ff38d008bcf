package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrCSRFTokenMissing occurs when CSRF token missing.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
	// ErrNoToken means the session carries no backend bearer token.
	ErrNoToken = errors.New("api token missing")
	// ErrTokenExpired means the stored bearer token is past its expiry.
	ErrTokenExpired = errors.New("api token expired")
	// ErrUnauthorized means the backend rejected the bearer token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the backend refused the action for this user.
	ErrForbidden = errors.New("forbidden")
)

const (
	// GenericErrorMessage is shown when nothing more specific is known.
	GenericErrorMessage = "Something went wrong, please try again."
	// SessionExpiredMessage asks the user to sign in again.
	SessionExpiredMessage = "Your session has expired, please sign in again."
)

// UserMessenger is implemented by errors that carry text safe to show to users.
type UserMessenger interface {
	UserMessage() string
}

// UserSafeMessage maps err to text that can be rendered on a page.
func UserSafeMessage(err error) string {
	if err == nil {
		return ""
	}
	if IsAuthError(err) {
		return SessionExpiredMessage
	}
	var um UserMessenger
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	if errors.Is(err, ErrNotFound) {
		return "The requested record could not be found."
	}
	if errors.Is(err, ErrForbidden) {
		return "You do not have permission to do that."
	}
	return GenericErrorMessage
}

// IsAuthError reports whether err means the user must sign in again.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNoToken) || errors.Is(err, ErrTokenExpired) || errors.Is(err, ErrUnauthorized)
}
