package reports

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaizen-academy/kaizen-admin/internal/backend"
	"github.com/kaizen-academy/kaizen-admin/internal/platform/cache"
	"github.com/kaizen-academy/kaizen-admin/internal/shared"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixtureService() *Service {
	return NewService(fixturePanels(), SourceConfig{Default: SourceFixture}, nil, nil, discardLogger()).WithNow(clock)
}

func TestPageResetsCourseOutsideBranch(t *testing.T) {
	svc := fixtureService()

	page, err := svc.Page(context.Background(), CategoryStudent, url.Values{
		KeyBranch: {"br-delhi"},
		KeyCourse: {"crs-karate"},
	})
	require.NoError(t, err)
	assert.True(t, page.CourseReset)
	assert.Equal(t, All, page.State[KeyCourse])
	require.Len(t, page.Courses, 2)
	for _, c := range page.Courses {
		assert.Equal(t, "br-delhi", c.BranchID)
	}
	assert.True(t, page.Searched)
	for _, row := range page.Table.Rows {
		assert.Equal(t, "Delhi Dojo", row[4])
	}

	var courseField Field
	for _, f := range page.Fields {
		if f.Key == KeyCourse {
			courseField = f
		}
	}
	assert.Len(t, courseField.Options, 3, "all plus two delhi courses")
}

func TestPageReportsFilterErrorsWithoutSearching(t *testing.T) {
	page, err := fixtureService().Page(context.Background(), CategoryFinancial, url.Values{KeyMinAmount: {"ten"}})
	require.NoError(t, err)
	assert.False(t, page.Searched)
	assert.Contains(t, page.Errors, KeyMinAmount)

	_, err = fixtureService().Export(context.Background(), CategoryFinancial, url.Values{KeyMinAmount: {"ten"}})
	var fe FilterErrors
	assert.ErrorAs(t, err, &fe)
}

func TestPageRejectsNonFiniteAmounts(t *testing.T) {
	for _, raw := range []string{"NaN", "Inf", "-inf"} {
		page, err := fixtureService().Page(context.Background(), CategoryFinancial, url.Values{KeyMinAmount: {raw}})
		require.NoError(t, err)
		assert.False(t, page.Searched, raw)
		assert.Equal(t, "Enter a number.", page.Errors[KeyMinAmount], raw)
	}
}

func TestPageUnknownCategory(t *testing.T) {
	_, err := fixtureService().Page(context.Background(), Category("payroll"), nil)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestCoursesForCategory(t *testing.T) {
	svc := fixtureService()
	courses, err := svc.Courses(context.Background(), CategoryCoach, "br-pune")
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "crs-karate", courses[0].ID)

	all, err := svc.Courses(context.Background(), CategoryCoach, All)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

type liveBackend struct {
	directoryCalls atomic.Int32
	reportStatus   atomic.Int32
	// gate, when set, holds directory responses until closed.
	gate    chan struct{}
	entered chan struct{}
}

func (b *liveBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case backend.PathReportBranchCourses:
		b.directoryCalls.Add(1)
		if b.gate != nil {
			b.entered <- struct{}{}
			<-b.gate
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []BranchCourses{
			{BranchID: "b-1", BranchName: "Baner", Courses: []CourseRef{{ID: "c-1", Name: "Karate"}}},
			{BranchID: "b-2", BranchName: "Adyar", Courses: []CourseRef{{ID: "c-2", Name: "Judo"}}},
		}})
	case "/api/reports/student":
		if status := int(b.reportStatus.Load()); status != 0 {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"message":"reporting unavailable"}`))
			return
		}
		_ = json.NewEncoder(w).Encode([]StudentRow{{StudentID: "s-1", Name: "Asha", BranchID: "b-1", CourseID: "c-1", Status: "active"}})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newLiveService(t *testing.T, fake *liveBackend) (*Service, *cache.Versioned) {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	api := backend.NewClient(srv.URL, time.Second, discardLogger()).As(shared.StaticToken("tok"))
	versioned := cache.NewVersioned(rdb, "reports", time.Minute)
	cfg := SourceConfig{Default: SourceLive}
	svc := NewService(NewPanels(api, cfg, clock), cfg, NewLiveDirectory(api), versioned, discardLogger()).WithNow(clock)
	return svc, versioned
}

func TestBranchCoursesCachedUntilBump(t *testing.T) {
	fake := &liveBackend{}
	svc, versioned := newLiveService(t, fake)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		page, err := svc.Page(ctx, CategoryStudent, url.Values{KeyBranch: {"b-1"}})
		require.NoError(t, err)
		require.Len(t, page.Courses, 1)
		require.Equal(t, 1, page.Table.Len())
	}
	assert.Equal(t, int32(1), fake.directoryCalls.Load())

	require.NoError(t, versioned.Bump(ctx))
	_, err := svc.BranchCourses(ctx, CategoryStudent)
	require.NoError(t, err)
	assert.Equal(t, int32(2), fake.directoryCalls.Load())
}

func TestBranchCoursesSurviveFirstCallerCancel(t *testing.T) {
	fake := &liveBackend{gate: make(chan struct{}), entered: make(chan struct{}, 4)}
	svc, _ := newLiveService(t, fake)

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.BranchCourses(first, CategoryStudent)
		firstErr <- err
	}()
	<-fake.entered

	type result struct {
		branches []BranchCourses
		err      error
	}
	second := make(chan result, 1)
	go func() {
		branches, err := svc.BranchCourses(context.Background(), CategoryStudent)
		second <- result{branches, err}
	}()

	cancel()
	require.ErrorIs(t, <-firstErr, context.Canceled)
	close(fake.gate)

	res := <-second
	require.NoError(t, res.err)
	assert.Len(t, res.branches, 2)
	assert.Equal(t, int32(1), fake.directoryCalls.Load())
}

func TestLiveFailureIsShownNotReplaced(t *testing.T) {
	fake := &liveBackend{}
	fake.reportStatus.Store(http.StatusServiceUnavailable)
	svc, _ := newLiveService(t, fake)

	page, err := svc.Page(context.Background(), CategoryStudent, nil)
	require.NoError(t, err)
	assert.False(t, page.Searched)
	assert.Equal(t, "reporting unavailable", page.Error)
	assert.Empty(t, page.Table.Rows)

	fake.reportStatus.Store(http.StatusUnauthorized)
	_, err = svc.Page(context.Background(), CategoryStudent, nil)
	assert.True(t, shared.IsAuthError(err))
}
