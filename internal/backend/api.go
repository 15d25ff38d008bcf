package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"

	"github.com/kaizen-academy/kaizen-admin/internal/shared"
)

// API is the bearer-authenticated surface repositories depend on.
type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// Authorized resolves the bearer token per call from a TokenSource.
type Authorized struct {
	client *Client
	tokens shared.TokenSource
}

// As binds the client to a token source.
func (c *Client) As(tokens shared.TokenSource) *Authorized {
	return &Authorized{client: c, tokens: tokens}
}

func (a *Authorized) Get(ctx context.Context, path string, query url.Values, out any) error {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return err
	}
	return a.client.Get(ctx, token, path, query, out)
}

func (a *Authorized) Post(ctx context.Context, path string, body, out any) error {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return err
	}
	return a.client.Post(ctx, token, path, body, out)
}

func (a *Authorized) Put(ctx context.Context, path string, body, out any) error {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return err
	}
	return a.client.Put(ctx, token, path, body, out)
}

func (a *Authorized) Delete(ctx context.Context, path string) error {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return err
	}
	return a.client.Delete(ctx, token, path)
}

// Data decodes either a {"data": ...} envelope or the bare payload.
type Data[T any] struct {
	Value T
}

func (d *Data[T]) UnmarshalJSON(raw []byte) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &env); err == nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
			return json.Unmarshal(env.Data, &d.Value)
		}
	}
	return json.Unmarshal(trimmed, &d.Value)
}

// Fetch issues GET path and unwraps the response envelope.
func Fetch[T any](ctx context.Context, api API, path string, query url.Values) (T, error) {
	var out Data[T]
	if err := api.Get(ctx, path, query, &out); err != nil {
		var zero T
		return zero, err
	}
	return out.Value, nil
}

// Send issues POST (or PUT when put is true) and unwraps the response envelope.
func Send[T any](ctx context.Context, api API, put bool, path string, body any) (T, error) {
	var out Data[T]
	var err error
	if put {
		err = api.Put(ctx, path, body, &out)
	} else {
		err = api.Post(ctx, path, body, &out)
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return out.Value, nil
}
