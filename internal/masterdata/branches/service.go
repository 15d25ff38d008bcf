package branches

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/courses"
	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/shared"
)

// CourseCatalog lists courses for selection and detail views.
type CourseCatalog interface {
	All(ctx context.Context) ([]courses.Course, error)
}

// Invalidator drops cached data derived from branches.
type Invalidator interface {
	Bump(ctx context.Context) error
}

type Service struct {
	repo        Repository
	courses     CourseCatalog
	invalidator Invalidator
	validator   *validator.Validate
	logger      *slog.Logger
}

func NewService(repo Repository, catalog CourseCatalog, invalidator Invalidator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, courses: catalog, invalidator: invalidator, validator: newValidator(), logger: logger}
}

// FormOptions are the lookups rendered as selects on the branch form.
type FormOptions struct {
	Managers []Manager
	Courses  []courses.Course
	Admins   []Admin
	Warnings []string
}

// Detail is a branch together with its related records.
type Detail struct {
	Branch   Branch
	Manager  *Manager
	Courses  []courses.Course
	Warnings []string
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Branch, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Search(all, filters), nil
}

func (s *Service) Get(ctx context.Context, id string) (Branch, error) {
	if strings.TrimSpace(id) == "" {
		return Branch{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

// Options loads managers, courses and admins concurrently. A failed lookup
// leaves its list empty and adds a warning; the form still renders.
func (s *Service) Options(ctx context.Context) (FormOptions, error) {
	var opts FormOptions
	errs := shared.Settled(ctx,
		func(ctx context.Context) (err error) { opts.Managers, err = s.repo.Managers(ctx); return },
		func(ctx context.Context) (err error) { opts.Courses, err = s.courses.All(ctx); return },
		func(ctx context.Context) (err error) { opts.Admins, err = s.repo.Admins(ctx); return },
	)
	labels := []string{"managers", "courses", "branch admins"}
	for i, err := range errs {
		if err == nil {
			continue
		}
		if authErr := shared.FirstAuthError(err); authErr != nil {
			return opts, authErr
		}
		s.logger.Warn("load branch form options", slog.String("lookup", labels[i]), slog.Any("error", err))
		opts.Warnings = append(opts.Warnings, "Could not load "+labels[i]+".")
	}
	return opts, nil
}

// Detail loads the branch and then its manager and courses concurrently.
func (s *Service) Detail(ctx context.Context, id string) (Detail, error) {
	branch, err := s.Get(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	detail := Detail{Branch: branch}
	var manager Manager
	var catalog []courses.Course
	fetches := []func(context.Context) error{
		func(ctx context.Context) (err error) { catalog, err = s.courses.All(ctx); return },
	}
	if branch.ManagerID != "" {
		fetches = append(fetches, func(ctx context.Context) (err error) {
			manager, err = s.repo.Manager(ctx, branch.ManagerID)
			return
		})
	}
	errs := shared.Settled(ctx, fetches...)
	if errs[0] != nil {
		if authErr := shared.FirstAuthError(errs[0]); authErr != nil {
			return Detail{}, authErr
		}
		s.logger.Warn("load branch courses", slog.String("branch_id", id), slog.Any("error", errs[0]))
		detail.Warnings = append(detail.Warnings, "Could not load courses.")
	} else {
		detail.Courses = pickCourses(catalog, offered(branch))
	}
	if len(errs) > 1 {
		if errs[1] != nil {
			if authErr := shared.FirstAuthError(errs[1]); authErr != nil {
				return Detail{}, authErr
			}
			s.logger.Warn("load branch manager", slog.String("branch_id", id), slog.Any("error", errs[1]))
			detail.Warnings = append(detail.Warnings, "Could not load the branch manager.")
		} else {
			detail.Manager = &manager
		}
	}
	return detail, nil
}

func (s *Service) Create(ctx context.Context, form BranchForm) (Branch, error) {
	if err := s.validate(form); err != nil {
		return Branch{}, err
	}
	created, err := s.repo.Create(ctx, form.Payload())
	if err != nil {
		return Branch{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, form BranchForm) (Branch, error) {
	if strings.TrimSpace(id) == "" {
		return Branch{}, shared.ErrInvalidID
	}
	if err := s.validate(form); err != nil {
		return Branch{}, err
	}
	updated, err := s.repo.Update(ctx, id, form.Payload())
	if err != nil {
		return Branch{}, err
	}
	s.invalidate(ctx)
	return updated, nil
}

// SetActive toggles the active flag through the status endpoint.
func (s *Service) SetActive(ctx context.Context, id string, active bool) error {
	if strings.TrimSpace(id) == "" {
		return shared.ErrInvalidID
	}
	if err := s.repo.SetStatus(ctx, id, active); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return shared.ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Bump(ctx); err != nil {
		s.logger.Warn("invalidate branch cache", slog.Any("error", err))
	}
}

// Search applies the list filters. The term matches name, id, address line,
// city, state, email or phone.
func Search(items []Branch, filters shared.ListFilters) []Branch {
	out := make([]Branch, 0, len(items))
	for _, b := range items {
		if !filters.AllowsActive(b.IsActive) {
			continue
		}
		if shared.Matches(filters.Search,
			b.Branch.Name, b.ID, b.Branch.Address.Line1, b.Branch.Address.City,
			b.Branch.Address.State, b.Branch.Email, b.Branch.Phone) {
			out = append(out, b)
		}
	}
	return out
}

func offered(b Branch) []string {
	if len(b.Assignments.Courses) > 0 {
		return b.Assignments.Courses
	}
	return b.OperationalDetails.CoursesOffered
}

func pickCourses(all []courses.Course, ids []string) []courses.Course {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]courses.Course, 0, len(ids))
	for _, c := range all {
		if _, ok := want[c.ID]; ok {
			out = append(out, c)
		}
	}
	return out
}
