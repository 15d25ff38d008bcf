package backend

import (
	"context"
	"strings"
)

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginUser is the user block of a login response.
type LoginUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// LoginResponse is returned by both login endpoints.
type LoginResponse struct {
	Token       string    `json:"token"`
	AccessToken string    `json:"access_token"`
	User        LoginUser `json:"user"`
}

// BearerToken returns whichever token field the backend filled.
func (r LoginResponse) BearerToken() string {
	if strings.TrimSpace(r.AccessToken) != "" {
		return r.AccessToken
	}
	return r.Token
}

// Login exchanges user credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResponse, error) {
	return c.login(ctx, PathLogin, creds)
}

// SuperadminLogin authenticates the service account used by background jobs.
func (c *Client) SuperadminLogin(ctx context.Context, creds Credentials) (LoginResponse, error) {
	return c.login(ctx, PathSuperadminLogin, creds)
}

func (c *Client) login(ctx context.Context, path string, creds Credentials) (LoginResponse, error) {
	var resp LoginResponse
	if err := c.PostPublic(ctx, path, creds, &resp); err != nil {
		return LoginResponse{}, err
	}
	return resp, nil
}
