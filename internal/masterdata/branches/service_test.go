package branches

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/courses"
	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/shared"
	internalShared "github.com/kaizen-academy/kaizen-admin/internal/shared"
)

type stubRepo struct {
	branches    []Branch
	managers    []Manager
	managersErr error
	admins      []Admin
	created     []BranchPayload
	statuses    map[string]bool
	deleted     []string
}

func (s *stubRepo) List(context.Context) ([]Branch, error) { return s.branches, nil }

func (s *stubRepo) Get(_ context.Context, id string) (Branch, error) {
	for _, b := range s.branches {
		if b.ID == id {
			return b, nil
		}
	}
	return Branch{}, internalShared.ErrNotFound
}

func (s *stubRepo) Create(_ context.Context, payload BranchPayload) (Branch, error) {
	s.created = append(s.created, payload)
	return Branch{ID: "br-new", Branch: payload.Branch}, nil
}

func (s *stubRepo) Update(_ context.Context, id string, payload BranchPayload) (Branch, error) {
	return Branch{ID: id, Branch: payload.Branch}, nil
}

func (s *stubRepo) SetStatus(_ context.Context, id string, active bool) error {
	if s.statuses == nil {
		s.statuses = map[string]bool{}
	}
	s.statuses[id] = active
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubRepo) Managers(context.Context) ([]Manager, error) { return s.managers, s.managersErr }

func (s *stubRepo) Manager(_ context.Context, id string) (Manager, error) {
	for _, m := range s.managers {
		if m.ID == id {
			return m, nil
		}
	}
	return Manager{}, internalShared.ErrNotFound
}

func (s *stubRepo) Admins(context.Context) ([]Admin, error) { return s.admins, nil }

type stubCatalog struct {
	items []courses.Course
	err   error
}

func (s stubCatalog) All(context.Context) ([]courses.Course, error) { return s.items, s.err }

type countingInvalidator struct{ bumps int }

func (c *countingInvalidator) Bump(context.Context) error {
	c.bumps++
	return nil
}

func branch(id, name, line1, city, state, email, phone string) Branch {
	return Branch{
		ID: id,
		Branch: Info{
			Name:    name,
			Email:   email,
			Phone:   phone,
			Address: Address{Line1: line1, City: city, State: state},
		},
		IsActive: true,
	}
}

func TestSearchMatchesDisplayFields(t *testing.T) {
	items := []Branch{
		branch("b-1", "Dharma Dojo", "12 Lake Road", "Pune", "Maharashtra", "dharma@kaizen.in", "9000000001"),
		branch("b-2", "Tiger Den", "4 Hill Street", "Chennai", "Tamil Nadu", "tiger@kaizen.in", "9000000002"),
		branch("b-3", "North Hall", "88 Verma Lane", "Delhi", "Delhi", "north@kaizen.in", "9000000003"),
		branch("b-4", "East Hall", "1 Park Ave", "Kolkata", "West Bengal", "east@kaizen.in", "9000000004"),
		branch("rma-5", "South Hall", "2 Bay Rd", "Kochi", "Kerala", "south@kaizen.in", "9000000005"),
		branch("b-6", "West Hall", "3 Sea Rd", "Goa", "Goa", "FORMAL@kaizen.in", "9000000006"),
	}

	got := Search(items, shared.ListFilters{Search: "rma", Status: shared.StatusAll})

	ids := make([]string, 0, len(got))
	for _, b := range got {
		ids = append(ids, b.ID)
	}
	// name, address line, id and email hits; Tiger Den and East Hall match nothing
	assert.ElementsMatch(t, []string{"b-1", "b-3", "rma-5", "b-6"}, ids)
}

func TestSearchMatchesPhoneAndHonoursStatus(t *testing.T) {
	inactive := branch("b-9", "Closed Dojo", "", "", "", "", "9876500000")
	inactive.IsActive = false
	items := []Branch{branch("b-1", "Open Dojo", "", "", "", "", "9123400000"), inactive}

	assert.Len(t, Search(items, shared.ListFilters{Search: "98765", Status: shared.StatusAll}), 1)
	assert.Empty(t, Search(items, shared.ListFilters{Search: "98765", Status: shared.StatusActive}))
	assert.Len(t, Search(items, shared.ListFilters{Status: shared.StatusAll}), 2)
}

func validForm() BranchForm {
	form := NewBranchForm()
	form.Name = "Dharma Dojo"
	form.Code = "PUN-01"
	form.Email = "dharma@kaizen.in"
	form.Phone = "9000000001"
	form.Line1 = "12 Lake Road"
	form.City = "Pune"
	form.State = "Maharashtra"
	form.Pincode = "411001"
	return form
}

func TestCreateValidatesBeforeCalling(t *testing.T) {
	repo := &stubRepo{}
	inv := &countingInvalidator{}
	svc := NewService(repo, stubCatalog{}, inv, nil)

	form := validForm()
	form.Phone = "12345"
	form.Timings = []Timing{{Day: "monday", Open: "18:00", Close: "07:00"}}
	form.Holidays = []string{"2024-13-40"}

	_, err := svc.Create(context.Background(), form)
	require.Error(t, err)
	fields, ok := shared.AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "phone")
	assert.Equal(t, "Each timing must close after it opens.", fields["timings"])
	assert.Contains(t, fields, "holidays")
	assert.Empty(t, repo.created)
	assert.Zero(t, inv.bumps)
}

func TestCreateSendsNestedPayloadAndInvalidates(t *testing.T) {
	repo := &stubRepo{}
	inv := &countingInvalidator{}
	svc := NewService(repo, stubCatalog{}, inv, nil)

	form := validForm()
	form.Courses = []string{"c-1"}
	form.Timings = []Timing{{Day: "monday", Open: "06:30", Close: "09:00"}}

	created, err := svc.Create(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, "br-new", created.ID)
	require.Len(t, repo.created, 1)
	payload := repo.created[0]
	assert.Equal(t, "Pune", payload.Branch.Address.City)
	assert.Equal(t, []string{"c-1"}, payload.Assignments.Courses)
	assert.Equal(t, []string{"c-1"}, payload.OperationalDetails.CoursesOffered)
	assert.NotNil(t, payload.Assignments.BranchAdmins)
	assert.NotNil(t, payload.OperationalDetails.Holidays)
	assert.Equal(t, 1, inv.bumps)
}

func TestOptionsAreAllSettled(t *testing.T) {
	repo := &stubRepo{
		managersErr: errors.New("coaches endpoint down"),
		admins:      []Admin{{ID: "u-1", FullName: "Asha Rao"}},
	}
	catalog := stubCatalog{items: []courses.Course{{ID: "c-1", Title: "Kata"}}}
	svc := NewService(repo, catalog, nil, nil)

	opts, err := svc.Options(context.Background())
	require.NoError(t, err)
	assert.Empty(t, opts.Managers)
	assert.Len(t, opts.Courses, 1)
	assert.Len(t, opts.Admins, 1)
	assert.Equal(t, []string{"Could not load managers."}, opts.Warnings)
}

func TestOptionsStopOnAuthFailure(t *testing.T) {
	repo := &stubRepo{managersErr: internalShared.ErrTokenExpired}
	svc := NewService(repo, stubCatalog{}, nil, nil)

	_, err := svc.Options(context.Background())
	assert.ErrorIs(t, err, internalShared.ErrTokenExpired)
}

func TestDetailResolvesManagerAndCourses(t *testing.T) {
	b := branch("b-1", "Dharma Dojo", "", "Pune", "", "", "")
	b.ManagerID = "co-1"
	b.Assignments.Courses = []string{"c-2"}
	m := Manager{ID: "co-1"}
	m.PersonalInfo.FirstName = "Kenji"
	repo := &stubRepo{branches: []Branch{b}, managers: []Manager{m}}
	catalog := stubCatalog{items: []courses.Course{{ID: "c-1", Title: "Kata"}, {ID: "c-2", Title: "Kumite"}}}
	svc := NewService(repo, catalog, nil, nil)

	detail, err := svc.Detail(context.Background(), "b-1")
	require.NoError(t, err)
	require.NotNil(t, detail.Manager)
	assert.Equal(t, "Kenji", detail.Manager.FullName())
	require.Len(t, detail.Courses, 1)
	assert.Equal(t, "Kumite", detail.Courses[0].Title)
	assert.Empty(t, detail.Warnings)

	_, err = svc.Detail(context.Background(), "missing")
	assert.ErrorIs(t, err, internalShared.ErrNotFound)
}

func TestSetActiveAndDelete(t *testing.T) {
	repo := &stubRepo{}
	inv := &countingInvalidator{}
	svc := NewService(repo, stubCatalog{}, inv, nil)

	require.NoError(t, svc.SetActive(context.Background(), "b-1", false))
	require.NoError(t, svc.Delete(context.Background(), "b-2"))
	assert.Equal(t, map[string]bool{"b-1": false}, repo.statuses)
	assert.Equal(t, []string{"b-2"}, repo.deleted)
	assert.Equal(t, 2, inv.bumps)
	assert.ErrorIs(t, svc.Delete(context.Background(), " "), shared.ErrInvalidID)
}
