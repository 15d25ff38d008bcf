package courses

import (
	"context"

	"github.com/kaizen-academy/kaizen-admin/internal/backend"
)

// Repository reads and writes courses through the backend API.
type Repository interface {
	List(ctx context.Context) ([]Course, error)
	Get(ctx context.Context, id string) (Course, error)
	Create(ctx context.Context, payload CoursePayload) (Course, error)
}

type repository struct {
	api backend.API
}

func NewRepository(api backend.API) Repository {
	return &repository{api: api}
}

func (r *repository) List(ctx context.Context) ([]Course, error) {
	return backend.Fetch[[]Course](ctx, r.api, backend.PathCourses, nil)
}

func (r *repository) Get(ctx context.Context, id string) (Course, error) {
	return backend.Fetch[Course](ctx, r.api, backend.Resource(backend.PathCourses, id), nil)
}

func (r *repository) Create(ctx context.Context, payload CoursePayload) (Course, error) {
	return backend.Send[Course](ctx, r.api, false, backend.PathCourses, payload)
}
