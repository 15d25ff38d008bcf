package courses

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/shared"
)

type Service struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: shared.NewValidator()}
}

// List returns the courses matching filters.
func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Course, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Search(all, filters), nil
}

// All returns every course without filtering.
func (s *Service) All(ctx context.Context) ([]Course, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Course, error) {
	if strings.TrimSpace(id) == "" {
		return Course{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

// Create validates the form and posts it; validation failures never reach the backend.
func (s *Service) Create(ctx context.Context, form CourseForm) (Course, error) {
	if err := shared.Validate(s.validate, form); err != nil {
		return Course{}, err
	}
	return s.repo.Create(ctx, form.Payload())
}

// Search applies the list filters: title, code or category for the term.
func Search(items []Course, filters shared.ListFilters) []Course {
	matched := shared.Filter(items, filters.Search, func(c Course) []string {
		return []string{c.Title, c.Code, c.Category}
	})
	out := matched[:0]
	for _, c := range matched {
		if filters.AllowsActive(c.IsActive) {
			out = append(out, c)
		}
	}
	return out
}
