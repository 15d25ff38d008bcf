package students

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/branches"
	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/courses"
	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/shared"
)

type BranchDirectory interface {
	List(ctx context.Context, filters shared.ListFilters) ([]branches.Branch, error)
	Get(ctx context.Context, id string) (branches.Branch, error)
}

type CourseCatalog interface {
	All(ctx context.Context) ([]courses.Course, error)
	Get(ctx context.Context, id string) (courses.Course, error)
}

type Service struct {
	repo      Repository
	branches  BranchDirectory
	courses   CourseCatalog
	validator *validator.Validate
	logger    *slog.Logger
}

func NewService(repo Repository, directory BranchDirectory, catalog CourseCatalog, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, branches: directory, courses: catalog, validator: shared.NewValidator(), logger: logger}
}

type FormOptions struct {
	Branches []branches.Branch
	Courses  []courses.Course
	Warnings []string
}

type Detail struct {
	Student  Student
	Branch   *branches.Branch
	Course   *courses.Course
	Warnings []string
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Student, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Search(all, filters), nil
}

func (s *Service) Create(ctx context.Context, form StudentForm) (Student, error) {
	if err := shared.Validate(s.validator, form); err != nil {
		return Student{}, err
	}
	return s.repo.Register(ctx, form.Payload())
}

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
			s.logger.Warn("load student form options", slog.String("lookup", label), slog.Any("error", errs[i]))
			opts.Warnings = append(opts.Warnings, "Could not load "+label+".")
		}
	}
	return opts, nil
}

// Detail loads the student, then its branch and course concurrently.
func (s *Service) Detail(ctx context.Context, id string) (Detail, error) {
	if strings.TrimSpace(id) == "" {
		return Detail{}, shared.ErrInvalidID
	}
	student, err := s.repo.Get(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	detail := Detail{Student: student}
	var branch branches.Branch
	var course courses.Course
	errs := shared.Settled(ctx,
		func(ctx context.Context) (err error) {
			if student.BranchID == "" {
				return nil
			}
			branch, err = s.branches.Get(ctx, student.BranchID)
			return
		},
		func(ctx context.Context) (err error) {
			if student.CourseID == "" {
				return nil
			}
			course, err = s.courses.Get(ctx, student.CourseID)
			return
		},
	)
	if err := shared.FirstAuthError(errs...); err != nil {
		return Detail{}, err
	}
	if errs[0] != nil {
		s.logger.Warn("load student branch", slog.String("student_id", id), slog.Any("error", errs[0]))
		detail.Warnings = append(detail.Warnings, "Could not load the branch.")
	} else if student.BranchID != "" {
		detail.Branch = &branch
	}
	if errs[1] != nil {
		s.logger.Warn("load student course", slog.String("student_id", id), slog.Any("error", errs[1]))
		detail.Warnings = append(detail.Warnings, "Could not load the course.")
	} else if student.CourseID != "" {
		detail.Course = &course
	}
	return detail, nil
}

// Search applies the list filters. The term matches full name, id, email or phone.
func Search(items []Student, filters shared.ListFilters) []Student {
	out := make([]Student, 0, len(items))
	for _, st := range items {
		if !filters.AllowsActive(st.IsActive) {
			continue
		}
		if shared.Matches(filters.Search, st.FullName, st.ID, st.Email, st.Phone) {
			out = append(out, st)
		}
	}
	return out
}
