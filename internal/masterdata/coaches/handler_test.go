package coaches

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaizen-academy/kaizen-admin/internal/backend"
	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/shared"
	internalShared "github.com/kaizen-academy/kaizen-admin/internal/shared"
)

type recordingRepo struct {
	Repository
	mu      sync.Mutex
	created []CoachPayload
	sent    []string
}

func (r *recordingRepo) Create(_ context.Context, payload CoachPayload) (Coach, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, payload)
	return Coach{ID: "co-1"}, nil
}

func (r *recordingRepo) SendCredentials(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, id)
	return nil
}

type fakeQueue struct{ ids []string }

func (q *fakeQueue) EnqueueSendCredentials(_ context.Context, id string) error {
	q.ids = append(q.ids, id)
	return nil
}

func newTestRouter(svc *Service) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger, svc, shared.Pages{CSRF: internalShared.NewCSRFManager("test-secret")})
	r := chi.NewRouter()
	r.Route("/coaches", h.MountRoutes)
	return r
}

func janeDoeValues() url.Values {
	return url.Values{
		"first_name":      {"Jane"},
		"last_name":       {"Doe"},
		"email":           {"jane@x.com"},
		"country_code":    {"+91"},
		"phone":           {"9999999999"},
		"password":        {"Abcd1234@"},
		"gender":          {"female"},
		"designation":     {"Coach"},
		"experience":      {"1-3 years"},
		"specializations": {"Karate"},
		"is_active":       {"on"},
	}
}

func postForm(t *testing.T, router http.Handler, sess *internalShared.Session, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = req.WithContext(internalShared.ContextWithSession(req.Context(), sess))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestCreateCoachPostsNullBranchAndEmptyCourses(t *testing.T) {
	var captured map[string]any
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != backend.PathCoaches {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"data":{"id":"co-9","personal_info":{"first_name":"Jane","last_name":"Doe"}}}`)
	}))
	defer srv.Close()

	client := backend.NewClient(srv.URL, time.Second, nil)
	svc := NewService(NewRepository(client.As(internalShared.StaticToken("opaque-token"))), nil, nil, nil)
	router := newTestRouter(svc)
	sess := &internalShared.Session{}

	rr := postForm(t, router, sess, "/coaches", janeDoeValues())

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/coaches/co-9", rr.Header().Get("Location"))
	assert.Equal(t, "Bearer opaque-token", gotAuth)

	require.NotNil(t, captured)
	branchID, present := captured["branch_id"]
	assert.True(t, present, "branch_id must be sent")
	assert.Nil(t, branchID)
	details, ok := captured["assignment_details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{}, details["courses"])
	personal := captured["personal_info"].(map[string]any)
	assert.Equal(t, "Jane", personal["first_name"])
	assert.Equal(t, "Doe", personal["last_name"])
	contact := captured["contact_info"].(map[string]any)
	assert.Equal(t, "jane@x.com", contact["email"])
	assert.Equal(t, []any{"Karate"}, captured["areas_of_expertise"])

	flash := sess.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, internalShared.FlashSuccess, flash.Kind)
}

func TestCreateCoachSendsCredentials(t *testing.T) {
	repo := &recordingRepo{}
	router := newTestRouter(NewService(repo, nil, nil, nil))
	values := janeDoeValues()
	values.Set("send_credentials", "on")

	rr := postForm(t, router, &internalShared.Session{}, "/coaches", values)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, []string{"co-1"}, repo.sent)

	queue := &fakeQueue{}
	repo = &recordingRepo{}
	router = newTestRouter(NewService(repo, nil, nil, nil).WithQueue(queue))
	sess := &internalShared.Session{}
	rr = postForm(t, router, sess, "/coaches", values)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Empty(t, repo.sent)
	assert.Equal(t, []string{"co-1"}, queue.ids)
	assert.Contains(t, sess.PopFlash().Message, "queued")
}

func TestExpiredTokenRedirectsToLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("backend must not be called with an expired token: %s", r.URL.Path)
	}))
	defer srv.Close()

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	sess := &internalShared.Session{}
	internalShared.PersistAuth(sess, internalShared.AuthData{Token: expired, UserID: "u-1"})

	client := backend.NewClient(srv.URL, time.Second, nil)
	svc := NewService(NewRepository(client.As(internalShared.NewSessionTokens())), nil, nil, nil)
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/coaches", nil)
	req = req.WithContext(internalShared.ContextWithSession(req.Context(), sess))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, shared.LoginPath, rr.Header().Get("Location"))
	assert.Empty(t, sess.User())
	flash := sess.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, internalShared.SessionExpiredMessage, flash.Message)
}

func TestSearchCoaches(t *testing.T) {
	items := []Coach{
		{ID: "co-1", PersonalInfo: PersonalInfo{FirstName: "Jane", LastName: "Doe"}, ProfessionalInfo: ProfessionalInfo{Designation: "Head Coach"}, IsActive: true},
		{ID: "co-2", PersonalInfo: PersonalInfo{FirstName: "Kenji", LastName: "Sato"}, ContactInfo: ContactInfo{Email: "kenji@dojo.in", Phone: "9876543210"}, IsActive: false},
	}
	assert.Len(t, Search(items, shared.ListFilters{Search: "jane doe", Status: shared.StatusAll}), 1)
	assert.Len(t, Search(items, shared.ListFilters{Search: "HEAD", Status: shared.StatusAll}), 1)
	assert.Len(t, Search(items, shared.ListFilters{Search: "98765", Status: shared.StatusAll}), 1)
	assert.Empty(t, Search(items, shared.ListFilters{Search: "98765", Status: shared.StatusActive}))
}
