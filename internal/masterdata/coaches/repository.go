package coaches

import (
	"context"

	"github.com/kaizen-academy/kaizen-admin/internal/backend"
)

type Repository interface {
	List(ctx context.Context) ([]Coach, error)
	Get(ctx context.Context, id string) (Coach, error)
	Create(ctx context.Context, payload CoachPayload) (Coach, error)
	Update(ctx context.Context, id string, payload CoachPayload) (Coach, error)
	SetStatus(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
	SendCredentials(ctx context.Context, id string) error
}

type repository struct {
	api backend.API
}

func NewRepository(api backend.API) Repository {
	return &repository{api: api}
}

func (r *repository) List(ctx context.Context) ([]Coach, error) {
	return backend.Fetch[[]Coach](ctx, r.api, backend.PathCoaches, nil)
}

func (r *repository) Get(ctx context.Context, id string) (Coach, error) {
	return backend.Fetch[Coach](ctx, r.api, backend.Resource(backend.PathCoaches, id), nil)
}

func (r *repository) Create(ctx context.Context, payload CoachPayload) (Coach, error) {
	return backend.Send[Coach](ctx, r.api, false, backend.PathCoaches, payload)
}

func (r *repository) Update(ctx context.Context, id string, payload CoachPayload) (Coach, error) {
	return backend.Send[Coach](ctx, r.api, true, backend.Resource(backend.PathCoaches, id), payload)
}

func (r *repository) SetStatus(ctx context.Context, id string, active bool) error {
	return r.api.Put(ctx, backend.Resource(backend.PathCoaches, id, "status"), statusPayload{IsActive: active}, nil)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.api.Delete(ctx, backend.Resource(backend.PathCoaches, id))
}

func (r *repository) SendCredentials(ctx context.Context, id string) error {
	return r.api.Post(ctx, backend.Resource(backend.PathCoaches, id, "send-credentials"), struct{}{}, nil)
}
