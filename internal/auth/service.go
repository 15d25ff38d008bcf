package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/kaizen-academy/kaizen-admin/internal/backend"
	"github.com/kaizen-academy/kaizen-admin/internal/shared"
)

// Authenticator exchanges credentials for a backend token.
type Authenticator interface {
	Login(ctx context.Context, creds backend.Credentials) (backend.LoginResponse, error)
}

// Service wraps authentication business rules.
type Service struct {
	backend Authenticator
}

// NewService constructs a new Service.
func NewService(authenticator Authenticator) *Service {
	return &Service{backend: authenticator}
}

// Authenticate validates email/password credentials against the backend and
// returns what the session should remember.
func (s *Service) Authenticate(ctx context.Context, email, password string) (shared.AuthData, error) {
	resp, err := s.backend.Login(ctx, backend.Credentials{Email: strings.ToLower(strings.TrimSpace(email)), Password: password})
	if err != nil {
		if errors.Is(err, shared.ErrUnauthorized) || errors.Is(err, backend.ErrValidation) || errors.Is(err, shared.ErrNotFound) {
			return shared.AuthData{}, shared.ErrInvalidCredentials
		}
		return shared.AuthData{}, err
	}
	token := resp.BearerToken()
	if token == "" {
		return shared.AuthData{}, errors.New("auth: login response carried no token")
	}
	userID := resp.User.ID
	if userID == "" {
		userID = resp.User.Email
	}
	if userID == "" {
		userID = email
	}
	return shared.AuthData{
		Token:  token,
		UserID: userID,
		Name:   resp.User.FullName,
		Email:  resp.User.Email,
		Role:   resp.User.Role,
	}, nil
}
