package branches

import (
	"context"
	"net/url"

	"github.com/kaizen-academy/kaizen-admin/internal/backend"
)

// Repository talks to the branch endpoints and the lookups the branch form needs.
type Repository interface {
	List(ctx context.Context) ([]Branch, error)
	Get(ctx context.Context, id string) (Branch, error)
	Create(ctx context.Context, payload BranchPayload) (Branch, error)
	Update(ctx context.Context, id string, payload BranchPayload) (Branch, error)
	SetStatus(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
	Managers(ctx context.Context) ([]Manager, error)
	Manager(ctx context.Context, id string) (Manager, error)
	Admins(ctx context.Context) ([]Admin, error)
}

type repository struct {
	api backend.API
}

func NewRepository(api backend.API) Repository {
	return &repository{api: api}
}

func (r *repository) List(ctx context.Context) ([]Branch, error) {
	return backend.Fetch[[]Branch](ctx, r.api, backend.PathBranches, nil)
}

func (r *repository) Get(ctx context.Context, id string) (Branch, error) {
	return backend.Fetch[Branch](ctx, r.api, backend.Resource(backend.PathBranches, id), nil)
}

func (r *repository) Create(ctx context.Context, payload BranchPayload) (Branch, error) {
	return backend.Send[Branch](ctx, r.api, false, backend.PathBranches, payload)
}

func (r *repository) Update(ctx context.Context, id string, payload BranchPayload) (Branch, error) {
	return backend.Send[Branch](ctx, r.api, true, backend.Resource(backend.PathBranches, id), payload)
}

func (r *repository) SetStatus(ctx context.Context, id string, active bool) error {
	return r.api.Put(ctx, backend.Resource(backend.PathBranches, id, "status"), statusPayload{IsActive: active}, nil)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.api.Delete(ctx, backend.Resource(backend.PathBranches, id))
}

func (r *repository) Managers(ctx context.Context) ([]Manager, error) {
	return backend.Fetch[[]Manager](ctx, r.api, backend.PathCoaches, nil)
}

func (r *repository) Manager(ctx context.Context, id string) (Manager, error) {
	return backend.Fetch[Manager](ctx, r.api, backend.Resource(backend.PathCoaches, id), nil)
}

func (r *repository) Admins(ctx context.Context) ([]Admin, error) {
	return backend.Fetch[[]Admin](ctx, r.api, backend.PathUsers, url.Values{"role": {"branch_admin"}})
}
