// Package backend is the HTTP client for the academy REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kaizen-academy/kaizen-admin/internal/shared"
)

const maxErrorBody = 16 << 10

// Client issues bearer-authenticated JSON requests against the backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

// NewClient constructs a client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		now:        time.Now,
	}
}

// WithHTTPClient swaps the underlying transport, mainly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

// Get decodes the JSON response of GET path?query into out.
func (c *Client) Get(ctx context.Context, token, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, token, path, query, nil, out)
}

// Post sends body as JSON and decodes the response into out when non-nil.
func (c *Client) Post(ctx context.Context, token, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, token, path, nil, body, out)
}

// Put sends body as JSON and decodes the response into out when non-nil.
func (c *Client) Put(ctx context.Context, token, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, token, path, nil, body, out)
}

// Delete issues DELETE path.
func (c *Client) Delete(ctx context.Context, token, path string) error {
	return c.do(ctx, http.MethodDelete, token, path, nil, nil, nil)
}

// PostPublic calls an endpoint that does not take a bearer token.
func (c *Client) PostPublic(ctx context.Context, path string, body, out any) error {
	return c.send(ctx, http.MethodPost, "", path, nil, body, out)
}

// GetPublic calls an unauthenticated GET endpoint.
func (c *Client) GetPublic(ctx context.Context, path string, query url.Values, out any) error {
	return c.send(ctx, http.MethodGet, "", path, query, nil, out)
}

func (c *Client) do(ctx context.Context, method, token, path string, query url.Values, body, out any) error {
	if token == "" {
		return shared.ErrNoToken
	}
	if err := shared.CheckTokenExpiry(token, c.now()); err != nil {
		return err
	}
	return c.send(ctx, method, token, path, query, body, out)
}

func (c *Client) send(ctx context.Context, method, token, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if c.logger != nil {
		c.logger.Debug("backend call",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.Duration("took", time.Since(start)))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newAPIError(method, path, resp.StatusCode, raw)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("backend: decode %s %s: %w", method, path, err)
	}
	return nil
}
