package coaches

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/branches"
	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/courses"
	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/shared"
)

// BranchDirectory resolves branches for selects and detail pages.
type BranchDirectory interface {
	List(ctx context.Context, filters shared.ListFilters) ([]branches.Branch, error)
	Get(ctx context.Context, id string) (branches.Branch, error)
}

// CourseCatalog lists courses for selects and detail pages.
type CourseCatalog interface {
	All(ctx context.Context) ([]courses.Course, error)
}

// CredentialQueue hands credential emails to the background worker.
type CredentialQueue interface {
	EnqueueSendCredentials(ctx context.Context, coachID string) error
}

type Service struct {
	repo      Repository
	branches  BranchDirectory
	courses   CourseCatalog
	queue     CredentialQueue
	validator *validator.Validate
	logger    *slog.Logger
}

func NewService(repo Repository, directory BranchDirectory, catalog CourseCatalog, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, branches: directory, courses: catalog, validator: newValidator(), logger: logger}
}

// WithQueue routes credential dispatch through the job queue.
func (s *Service) WithQueue(queue CredentialQueue) *Service {
	s.queue = queue
	return s
}

// FormOptions are the selects rendered on the coach form.
type FormOptions struct {
	Branches []branches.Branch
	Courses  []courses.Course
	Warnings []string
}

// Detail is a coach with its branch and assigned courses.
type Detail struct {
	Coach    Coach
	Branch   *branches.Branch
	Courses  []courses.Course
	Warnings []string
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Coach, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Search(all, filters), nil
}

func (s *Service) Get(ctx context.Context, id string) (Coach, error) {
	if strings.TrimSpace(id) == "" {
		return Coach{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

// Options loads branches and courses concurrently; each failure only adds a warning.
func (s *Service) Options(ctx context.Context) (FormOptions, error) {
	var opts FormOptions
	errs := shared.Settled(ctx,
		func(ctx context.Context) (err error) {
			opts.Branches, err = s.branches.List(ctx, shared.ListFilters{Status: shared.StatusActive})
			return
		},
		func(ctx context.Context) (err error) { opts.Courses, err = s.courses.All(ctx); return },
	)
	if err := shared.FirstAuthError(errs...); err != nil {
		return opts, err
	}
	for i, label := range []string{"branches", "courses"} {
		if errs[i] != nil {
			s.logger.Warn("load coach form options", slog.String("lookup", label), slog.Any("error", errs[i]))
			opts.Warnings = append(opts.Warnings, "Could not load "+label+".")
		}
	}
	return opts, nil
}

// Detail loads the coach, then its branch and courses concurrently.
func (s *Service) Detail(ctx context.Context, id string) (Detail, error) {
	coach, err := s.Get(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	detail := Detail{Coach: coach}
	var branch branches.Branch
	var catalog []courses.Course
	branchID := coach.Branch()
	errs := shared.Settled(ctx,
		func(ctx context.Context) error {
			if branchID == "" {
				return nil
			}
			var err error
			branch, err = s.branches.Get(ctx, branchID)
			return err
		},
		func(ctx context.Context) (err error) { catalog, err = s.courses.All(ctx); return },
	)
	if err := shared.FirstAuthError(errs...); err != nil {
		return Detail{}, err
	}
	switch {
	case errs[0] != nil:
		s.logger.Warn("load coach branch", slog.String("coach_id", id), slog.Any("error", errs[0]))
		detail.Warnings = append(detail.Warnings, "Could not load the assigned branch.")
	case branchID != "":
		detail.Branch = &branch
	}
	if errs[1] != nil {
		s.logger.Warn("load coach courses", slog.String("coach_id", id), slog.Any("error", errs[1]))
		detail.Warnings = append(detail.Warnings, "Could not load assigned courses.")
	} else {
		detail.Courses = assigned(catalog, coach.AssignmentDetails.Courses)
	}
	return detail, nil
}

func (s *Service) Create(ctx context.Context, form CoachForm) (Coach, error) {
	if err := s.validate(form, true); err != nil {
		return Coach{}, err
	}
	return s.repo.Create(ctx, form.Payload())
}

// Update saves the coach. An empty password keeps the current one.
func (s *Service) Update(ctx context.Context, id string, form CoachForm) (Coach, error) {
	if strings.TrimSpace(id) == "" {
		return Coach{}, shared.ErrInvalidID
	}
	if err := s.validate(form, false); err != nil {
		return Coach{}, err
	}
	return s.repo.Update(ctx, id, form.Payload())
}

func (s *Service) SetActive(ctx context.Context, id string, active bool) error {
	if strings.TrimSpace(id) == "" {
		return shared.ErrInvalidID
	}
	return s.repo.SetStatus(ctx, id, active)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return shared.ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}

// SendCredentials emails login credentials to the coach. With a queue the
// request is enqueued and queued reports true; otherwise the backend is called inline.
func (s *Service) SendCredentials(ctx context.Context, id string) (queued bool, err error) {
	if strings.TrimSpace(id) == "" {
		return false, shared.ErrInvalidID
	}
	if s.queue != nil {
		return true, s.queue.EnqueueSendCredentials(ctx, id)
	}
	return false, s.repo.SendCredentials(ctx, id)
}

// Search applies the list filters. The term matches full name, id, email,
// phone or designation.
func Search(items []Coach, filters shared.ListFilters) []Coach {
	out := make([]Coach, 0, len(items))
	for _, c := range items {
		if !filters.AllowsActive(c.IsActive) {
			continue
		}
		if shared.Matches(filters.Search,
			c.FullName(), c.ID, c.ContactInfo.Email, c.ContactInfo.Phone, c.ProfessionalInfo.Designation) {
			out = append(out, c)
		}
	}
	return out
}

func assigned(all []courses.Course, ids []string) []courses.Course {
	out := make([]courses.Course, 0, len(ids))
	for _, c := range all {
		for _, id := range ids {
			if c.ID == id {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
