package reports

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/kaizen-academy/kaizen-admin/internal/shared"
)

// ErrUnknownCategory is returned for a category without a panel.
var ErrUnknownCategory = errors.New("reports: unknown category")

// OptionCache stores the branch-courses payload between page renders.
type OptionCache interface {
	BuildKey(ctx context.Context, parts ...string) (string, error)
	FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error
}

// PageResult is everything a report page renders.
type PageResult struct {
	Category    Category
	Fields      []Field
	State       FilterState
	Courses     []CourseOption
	CourseReset bool
	Table       Table
	Searched    bool
	Errors      FilterErrors
	Error       string
	Warnings    []string
	Source      string
}

// Query returns the active filters encoded for links.
func (p PageResult) Query() string {
	return p.State.Query().Encode()
}

// Service runs report searches.
type Service struct {
	panels      Panels
	sources     SourceConfig
	directories map[string]CourseDirectory
	cache       OptionCache
	logger      *slog.Logger
	now         func() time.Time
	group       singleflight.Group
}

// NewService wires the panels with the live course directory. Fixture
// categories use the built-in fixture directory.
func NewService(panels Panels, sources SourceConfig, live CourseDirectory, cache OptionCache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		panels:  panels,
		sources: sources,
		directories: map[string]CourseDirectory{
			SourceLive:    live,
			SourceFixture: FixtureDirectory{},
		},
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// WithNow overrides the clock used for date ranges.
func (s *Service) WithNow(fn func() time.Time) *Service {
	if fn != nil {
		s.now = fn
	}
	return s
}

// Panel returns the searcher of category.
func (s *Service) Panel(category Category) (Searcher, error) {
	panel, ok := s.panels[category]
	if !ok {
		return nil, ErrUnknownCategory
	}
	return panel, nil
}

// Page parses the filters in values, applies the branch to course cascade and
// runs the search. Filter problems are reported in the result without
// searching. Authentication failures are returned as errors.
func (s *Service) Page(ctx context.Context, category Category, values url.Values) (PageResult, error) {
	panel, err := s.Panel(category)
	if err != nil {
		return PageResult{}, err
	}
	fields := panel.Fields()
	result := PageResult{
		Category: category,
		Fields:   fields,
		State:    ParseFilterState(fields, values),
		Source:   panel.SourceName(),
	}

	if hasField(fields, KeyBranch) || hasField(fields, KeyCourse) {
		branches, err := s.BranchCourses(ctx, category)
		switch {
		case shared.IsAuthError(err):
			return PageResult{}, err
		case err != nil:
			s.logger.Warn("load branch courses", slog.Any("error", err), slog.String("category", string(category)))
			result.Warnings = append(result.Warnings, "Could not load branch and course options.")
		default:
			state, narrowed, reset := ApplyBranchSelection(result.State, FlattenCourses(branches))
			result.State = state
			result.Courses = narrowed
			result.CourseReset = reset
			setOptions(result.Fields, KeyBranch, BranchOptions(branches))
			setOptions(result.Fields, KeyCourse, CourseSelectOptions(narrowed))
		}
	}

	criteria, err := DecodeCriteria(result.State, s.now())
	if err != nil {
		var fe FilterErrors
		if errors.As(err, &fe) {
			result.Errors = fe
			return result, nil
		}
		return PageResult{}, err
	}

	table, err := panel.Search(ctx, criteria)
	if err != nil {
		if shared.IsAuthError(err) {
			return PageResult{}, err
		}
		s.logger.Error("report search", slog.Any("error", err), slog.String("category", string(category)), slog.String("source", result.Source))
		result.Error = shared.UserSafeMessage(err)
		return result, nil
	}
	result.Table = table
	result.Searched = true
	return result, nil
}

// Export runs the search for values and fails on invalid filters.
func (s *Service) Export(ctx context.Context, category Category, values url.Values) (Table, error) {
	page, err := s.Page(ctx, category, values)
	if err != nil {
		return Table{}, err
	}
	if len(page.Errors) > 0 {
		return Table{}, page.Errors
	}
	if !page.Searched {
		return Table{}, errors.New("reports: " + page.Error)
	}
	return page.Table, nil
}

// Courses returns the course options offered by branchID for category.
func (s *Service) Courses(ctx context.Context, category Category, branchID string) ([]CourseOption, error) {
	if _, err := s.Panel(category); err != nil {
		return nil, err
	}
	branches, err := s.BranchCourses(ctx, category)
	if err != nil {
		return nil, err
	}
	return CoursesForBranch(FlattenCourses(branches), branchID), nil
}

// BranchCourses loads the branch-courses payload from the directory matching
// the category source. Concurrent loads for the same key share one call and
// the result is cached until the namespace is bumped.
func (s *Service) BranchCourses(ctx context.Context, category Category) ([]BranchCourses, error) {
	source := s.sources.SourceFor(category)
	dir := s.directories[source]
	if dir == nil {
		return nil, errors.New("reports: no course directory for source " + source)
	}
	if s.cache == nil {
		return dir.BranchCourses(ctx)
	}
	key, err := s.cache.BuildKey(ctx, "branch-courses", source)
	if err != nil {
		s.logger.Warn("build cache key", slog.Any("error", err))
		return dir.BranchCourses(ctx)
	}

	// The shared call outlives the caller that started it; other waiters must
	// not inherit its cancellation.
	detached := context.WithoutCancel(ctx)
	resultChan := s.group.DoChan(key, func() (interface{}, error) {
		var out []BranchCourses
		err := s.cache.FetchJSON(detached, key, &out, func(ctx context.Context) (any, error) {
			return dir.BranchCourses(ctx)
		})
		return out, err
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]BranchCourses), nil
	}
}

func hasField(fields []Field, key string) bool {
	for _, f := range fields {
		if f.Key == key {
			return true
		}
	}
	return false
}

func setOptions(fields []Field, key string, opts []Option) {
	for i := range fields {
		if fields[i].Key == key {
			fields[i].Options = opts
		}
	}
}
