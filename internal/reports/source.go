package reports

import (
	"context"
	"time"

	"github.com/kaizen-academy/kaizen-admin/internal/backend"
)

// Source names.
const (
	SourceLive    = "live"
	SourceFixture = "fixture"
)

// Source supplies the rows of one report category. Criteria are passed so live
// sources can narrow server side; panels apply the same predicates afterwards.
type Source[T any] interface {
	Rows(ctx context.Context, c Criteria) ([]T, error)
	Name() string
}

// LiveSource reads rows from GET /api/reports/{category}.
type LiveSource[T any] struct {
	api      backend.API
	category Category
}

// NewLiveSource returns a source backed by the report endpoint of category.
func NewLiveSource[T any](api backend.API, category Category) *LiveSource[T] {
	return &LiveSource[T]{api: api, category: category}
}

func (s *LiveSource[T]) Rows(ctx context.Context, c Criteria) ([]T, error) {
	return backend.Fetch[[]T](ctx, s.api, backend.Resource(backend.PathReports, string(s.category)), c.Query())
}

func (s *LiveSource[T]) Name() string { return SourceLive }

// FixtureSource generates deterministic rows relative to the current time.
type FixtureSource[T any] struct {
	generate func(now time.Time) []T
	now      func() time.Time
}

// NewFixtureSource wraps a generator.
func NewFixtureSource[T any](generate func(now time.Time) []T, now func() time.Time) *FixtureSource[T] {
	if now == nil {
		now = time.Now
	}
	return &FixtureSource[T]{generate: generate, now: now}
}

func (s *FixtureSource[T]) Rows(ctx context.Context, _ Criteria) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.generate(s.now()), nil
}

func (s *FixtureSource[T]) Name() string { return SourceFixture }

// CourseDirectory lists branches with the courses they offer.
type CourseDirectory interface {
	BranchCourses(ctx context.Context) ([]BranchCourses, error)
	Name() string
}

// LiveDirectory reads GET /api/reports/branch-courses.
type LiveDirectory struct {
	api backend.API
}

// NewLiveDirectory returns a directory backed by the report API.
func NewLiveDirectory(api backend.API) *LiveDirectory {
	return &LiveDirectory{api: api}
}

func (d *LiveDirectory) BranchCourses(ctx context.Context) ([]BranchCourses, error) {
	return backend.Fetch[[]BranchCourses](ctx, d.api, backend.PathReportBranchCourses, nil)
}

func (d *LiveDirectory) Name() string { return SourceLive }

// FixtureDirectory serves the fixture branches.
type FixtureDirectory struct{}

func (FixtureDirectory) BranchCourses(ctx context.Context) ([]BranchCourses, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fixtureBranches(), nil
}

func (FixtureDirectory) Name() string { return SourceFixture }
