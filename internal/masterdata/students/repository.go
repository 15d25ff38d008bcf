package students

import (
	"context"
	"net/url"

	"github.com/kaizen-academy/kaizen-admin/internal/backend"
)

// Registrar posts to unauthenticated endpoints.
type Registrar interface {
	PostPublic(ctx context.Context, path string, body, out any) error
}

type Repository interface {
	List(ctx context.Context) ([]Student, error)
	Get(ctx context.Context, id string) (Student, error)
	Register(ctx context.Context, payload RegisterPayload) (Student, error)
}

type repository struct {
	api       backend.API
	registrar Registrar
}

func NewRepository(api backend.API, registrar Registrar) Repository {
	return &repository{api: api, registrar: registrar}
}

func (r *repository) List(ctx context.Context) ([]Student, error) {
	return backend.Fetch[[]Student](ctx, r.api, backend.PathUsers, url.Values{"role": {roleStudent}})
}

func (r *repository) Get(ctx context.Context, id string) (Student, error) {
	return backend.Fetch[Student](ctx, r.api, backend.Resource(backend.PathUsers, id), nil)
}

// Register creates the account through the public registration endpoint. The
// response carries the new user either bare or under "user".
func (r *repository) Register(ctx context.Context, payload RegisterPayload) (Student, error) {
	var resp backend.Data[struct {
		Student
		User *Student `json:"user"`
	}]
	if err := r.registrar.PostPublic(ctx, backend.PathRegister, payload, &resp); err != nil {
		return Student{}, err
	}
	if resp.Value.User != nil {
		return *resp.Value.User, nil
	}
	return resp.Value.Student, nil
}
