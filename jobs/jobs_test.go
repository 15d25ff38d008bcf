package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaizen-academy/kaizen-admin/internal/backend"
	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/coaches"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeBackend struct {
	logins   atomic.Int32
	sends    atomic.Int32
	status   atomic.Int32
	lastAuth atomic.Value
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case backend.PathSuperadminLogin:
		b.logins.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{"token": "svc-token"})
	case "/api/coaches/co-1/send-credentials":
		b.sends.Add(1)
		b.lastAuth.Store(r.Header.Get("Authorization"))
		if s := int(b.status.Load()); s != 0 {
			w.WriteHeader(s)
			_, _ = w.Write([]byte(`{"message":"nope"}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":{}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newJob(t *testing.T, fake *fakeBackend) *SendCredentialsJob {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	client := backend.NewClient(srv.URL, time.Second, discardLogger())
	account := NewServiceAccount(client, "ops@kaizen.test", "secret")
	repo := coaches.NewRepository(client.As(account))
	return NewSendCredentialsJob(repo, account, discardLogger(), nil)
}

func task(t *testing.T, coachID string) *asynq.Task {
	t.Helper()
	tk, err := NewSendCredentialsTask(coachID)
	require.NoError(t, err)
	return tk
}

func TestSendCredentialsUsesServiceAccount(t *testing.T) {
	fake := &fakeBackend{}
	job := newJob(t, fake)

	require.NoError(t, job.Handle(context.Background(), task(t, "co-1")))
	require.NoError(t, job.Handle(context.Background(), task(t, "co-1")))

	assert.Equal(t, int32(1), fake.logins.Load(), "token is reused")
	assert.Equal(t, int32(2), fake.sends.Load())
	assert.Equal(t, "Bearer svc-token", fake.lastAuth.Load())
}

func TestSendCredentialsMissingCoachSkipsRetry(t *testing.T) {
	fake := &fakeBackend{}
	fake.status.Store(http.StatusNotFound)
	err := newJob(t, fake).Handle(context.Background(), task(t, "co-1"))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestSendCredentialsUnauthorizedRelogsIn(t *testing.T) {
	fake := &fakeBackend{}
	job := newJob(t, fake)

	fake.status.Store(http.StatusUnauthorized)
	err := job.Handle(context.Background(), task(t, "co-1"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))

	fake.status.Store(0)
	require.NoError(t, job.Handle(context.Background(), task(t, "co-1")))
	assert.Equal(t, int32(2), fake.logins.Load())
}

func TestSendCredentialsBadPayload(t *testing.T) {
	job := newJob(t, &fakeBackend{})
	err := job.Handle(context.Background(), asynq.NewTask(TaskSendCoachCredentials, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	_, err = NewSendCredentialsTask("  ")
	assert.Error(t, err)
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, f.err
}

func (f *fakeEnqueuer) Close() error { return nil }

func TestClientEnqueueSendCredentials(t *testing.T) {
	enq := &fakeEnqueuer{}
	client := NewClientWith(enq)

	require.NoError(t, client.EnqueueSendCredentials(context.Background(), "co-9"))
	require.Len(t, enq.tasks, 1)
	assert.Equal(t, TaskSendCoachCredentials, enq.tasks[0].Type())
	assert.JSONEq(t, `{"coach_id":"co-9"}`, string(enq.tasks[0].Payload()))

	enq.err = asynq.ErrDuplicateTask
	assert.NoError(t, client.EnqueueSendCredentials(context.Background(), "co-9"))
}

type fakeInspector struct {
	info *asynq.QueueInfo
	err  error
}

func (f fakeInspector) GetQueueInfo(string) (*asynq.QueueInfo, error) { return f.info, f.err }

func TestHealthHandler(t *testing.T) {
	h := NewHandler(fakeInspector{info: &asynq.QueueInfo{Queue: QueueDefault, Pending: 3, Retry: 1}}, discardLogger())
	rr := httptest.NewRecorder()
	h.health(rr, httptest.NewRequest(http.MethodGet, "/jobs/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"queue":"default","pending":3,"active":0,"retry":1,"archived":0,"processed_today":0,"failed_today":0,"enabled":true}`, rr.Body.String())

	h = NewHandler(fakeInspector{err: errors.New("redis down")}, discardLogger())
	rr = httptest.NewRecorder()
	h.health(rr, httptest.NewRequest(http.MethodGet, "/jobs/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	h = NewHandler(nil, discardLogger())
	rr = httptest.NewRecorder()
	h.health(rr, httptest.NewRequest(http.MethodGet, "/jobs/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
