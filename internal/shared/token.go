package shared

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	sessionTokenKey     = "api_token"
	sessionUserNameKey  = "user_name"
	sessionUserEmailKey = "user_email"
	sessionUserRoleKey  = "user_role"
)

// AuthData is what a backend login response leaves in the session.
type AuthData struct {
	Token  string
	UserID string
	Name   string
	Email  string
	Role   string
}

// PersistAuth stores auth data from a login response on the session.
func PersistAuth(sess *Session, auth AuthData) {
	if sess == nil {
		return
	}
	sess.Set(sessionTokenKey, auth.Token)
	sess.Set(sessionUserNameKey, auth.Name)
	sess.Set(sessionUserEmailKey, auth.Email)
	sess.Set(sessionUserRoleKey, auth.Role)
	sess.SetUser(auth.UserID)
}

// ClearAuth forgets the bearer token and user identity.
func ClearAuth(sess *Session) {
	if sess == nil {
		return
	}
	sess.Delete(sessionTokenKey)
	sess.Delete(sessionUserNameKey)
	sess.Delete(sessionUserEmailKey)
	sess.Delete(sessionUserRoleKey)
	sess.SetUser("")
}

// TokenSource yields the bearer token for outbound backend calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// SessionTokens reads the bearer token from the request session.
type SessionTokens struct {
	now func() time.Time
}

// NewSessionTokens constructs a session-backed TokenSource.
func NewSessionTokens() *SessionTokens {
	return &SessionTokens{now: time.Now}
}

// WithNow overrides the clock used for expiry checks.
func (s *SessionTokens) WithNow(fn func() time.Time) *SessionTokens {
	if fn != nil {
		s.now = fn
	}
	return s
}

// Token returns the session token or ErrNoToken / ErrTokenExpired.
func (s *SessionTokens) Token(ctx context.Context) (string, error) {
	raw := SessionFromContext(ctx).Get(sessionTokenKey)
	if raw == "" {
		return "", ErrNoToken
	}
	if err := CheckTokenExpiry(raw, s.now()); err != nil {
		return "", err
	}
	return raw, nil
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token(context.Context) (string, error) {
	if t == "" {
		return "", ErrNoToken
	}
	return string(t), nil
}

// CheckTokenExpiry inspects the exp claim of a JWT without verifying its signature;
// verification is the backend's job. Opaque (non-JWT) tokens are passed through.
func CheckTokenExpiry(raw string, now time.Time) error {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil
	}
	if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
		return ErrTokenExpired
	}
	return nil
}

// HasToken reports whether a bearer token is stored on the session.
func HasToken(sess *Session) bool {
	return sess.Get(sessionTokenKey) != ""
}
