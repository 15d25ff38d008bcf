package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/kaizen-academy/kaizen-admin/internal/backend"
	"github.com/kaizen-academy/kaizen-admin/internal/shared"
)

// Authenticator is the login call used to obtain a service token.
type Authenticator interface {
	SuperadminLogin(ctx context.Context, creds backend.Credentials) (backend.LoginResponse, error)
}

// ServiceAccount is a TokenSource for workers. It logs in with the configured
// credentials and reuses the token until it expires or is invalidated.
type ServiceAccount struct {
	auth  Authenticator
	creds backend.Credentials
	now   func() time.Time

	mu    sync.Mutex
	token string
}

// NewServiceAccount constructs a ServiceAccount.
func NewServiceAccount(auth Authenticator, email, password string) *ServiceAccount {
	return &ServiceAccount{
		auth:  auth,
		creds: backend.Credentials{Email: email, Password: password},
		now:   time.Now,
	}
}

// Token implements shared.TokenSource.
func (s *ServiceAccount) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" && shared.CheckTokenExpiry(s.token, s.now()) == nil {
		return s.token, nil
	}
	resp, err := s.auth.SuperadminLogin(ctx, s.creds)
	if err != nil {
		return "", err
	}
	token := resp.BearerToken()
	if token == "" {
		return "", shared.ErrNoToken
	}
	s.token = token
	return token, nil
}

// Invalidate drops the cached token so the next call logs in again.
func (s *ServiceAccount) Invalidate() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}
