package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/kaizen-academy/kaizen-admin/internal/auth"
	"github.com/kaizen-academy/kaizen-admin/internal/backend"
	"github.com/kaizen-academy/kaizen-admin/internal/shared"
	"github.com/kaizen-academy/kaizen-admin/internal/view"
	_ "github.com/kaizen-academy/kaizen-admin/testing"
)

type stubAuthenticator struct {
	password string
	resp     backend.LoginResponse
}

func (s *stubAuthenticator) Login(_ context.Context, creds backend.Credentials) (backend.LoginResponse, error) {
	if creds.Password != s.password {
		return backend.LoginResponse{}, &backend.APIError{Method: http.MethodPost, Path: backend.PathLogin, Status: http.StatusUnauthorized}
	}
	return s.resp, nil
}

type fixture struct {
	handler  *auth.Handler
	sessions *shared.SessionManager
	redis    *miniredis.Miniredis
}

func newAuthHandler(t *testing.T, authenticator auth.Authenticator) fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessionManager := shared.NewSessionManager(redisClient, "test_session", "sessionsecret", time.Hour, false)
	csrfManager := shared.NewCSRFManager("csrfsecret")
	templates, err := view.NewEngine()
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	handler := auth.NewHandler(nil, auth.NewService(authenticator), templates, sessionManager, csrfManager)
	return fixture{handler: handler, sessions: sessionManager, redis: mr}
}

// primeSession performs the GET so a session and CSRF token exist. It returns the
// session together with the signed cookie value issued for it.
func primeSession(t *testing.T, f fixture) (*shared.Session, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	sess, err := f.sessions.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	ctx := shared.ContextWithSession(req.Context(), sess)
	req = req.WithContext(ctx)
	res := httptest.NewRecorder()
	f.handler.ShowLoginForTest(res, req)
	if err := f.sessions.Commit(ctx, res, req, sess); err != nil {
		t.Fatalf("commit session: %v", err)
	}
	if res.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "<form") {
		t.Fatalf("expected login form in body")
	}
	// Commit runs after the body is written, so read the live header map.
	for _, c := range (&http.Response{Header: res.Header()}).Cookies() {
		if c.Name == f.sessions.CookieName() {
			return sess, c.Value
		}
	}
	t.Fatalf("session cookie not issued")
	return nil, ""
}

func postLogin(t *testing.T, f fixture, cookie string, values url.Values) (*httptest.ResponseRecorder, *shared.Session) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: f.sessions.CookieName(), Value: cookie})

	sess, err := f.sessions.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("load session for post: %v", err)
	}
	ctx := shared.ContextWithSession(req.Context(), sess)
	req = req.WithContext(ctx)

	res := httptest.NewRecorder()
	f.handler.HandleLoginForTest(res, req)
	if err := f.sessions.Commit(ctx, res, req, sess); err != nil {
		t.Fatalf("commit session post: %v", err)
	}
	return res, sess
}

func TestLoginPage(t *testing.T) {
	f := newAuthHandler(t, &stubAuthenticator{})
	sess, _ := primeSession(t, f)
	if sess.Get(shared.CSRFSessionKey) == "" {
		t.Fatalf("csrf token not set")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := newAuthHandler(t, &stubAuthenticator{password: "correctpass"})
	sess, cookie := primeSession(t, f)

	values := url.Values{}
	values.Set("email", "admin@kaizen.in")
	values.Set("password", "wrongpass")
	values.Set("csrf_token", sess.Get(shared.CSRFSessionKey))

	res, loaded := postLogin(t, f, cookie, values)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "Invalid email or password") {
		t.Fatalf("expected error message in response")
	}
	if shared.HasToken(loaded) {
		t.Fatalf("token must not be stored after a failed login")
	}
}

func TestLoginValidationError(t *testing.T) {
	f := newAuthHandler(t, &stubAuthenticator{password: "correctpass"})
	_, cookie := primeSession(t, f)

	values := url.Values{}
	values.Set("email", "not-an-email")

	res, _ := postLogin(t, f, cookie, values)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "Enter a valid email address") {
		t.Fatalf("expected inline email error")
	}
}

func TestLoginSuccessStoresTokenAndRotatesSession(t *testing.T) {
	f := newAuthHandler(t, &stubAuthenticator{
		password: "correctpass",
		resp: backend.LoginResponse{
			AccessToken: "opaque-token",
			User:        backend.LoginUser{ID: "u-1", Email: "admin@kaizen.in", FullName: "Asha Rao", Role: "superadmin"},
		},
	})
	sess, cookie := primeSession(t, f)
	oldID := sess.ID
	oldToken := sess.Get(shared.CSRFSessionKey)

	values := url.Values{}
	values.Set("email", "Admin@Kaizen.in")
	values.Set("password", "correctpass")

	res, loaded := postLogin(t, f, cookie, values)
	if res.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", res.Code)
	}
	if loc := res.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
	if loaded.ID == oldID {
		t.Fatalf("session id must change on login")
	}
	if f.redis.Exists("kaizen:session:" + oldID) {
		t.Fatalf("previous session record must be removed")
	}
	if !shared.HasToken(loaded) {
		t.Fatalf("token not stored")
	}
	if loaded.Get(shared.CSRFSessionKey) == oldToken {
		t.Fatalf("csrf token must rotate on login")
	}
	principal, ok := shared.PrincipalFromContext(shared.ContextWithSession(context.Background(), loaded))
	if !ok || principal.Name != "Asha Rao" || principal.Role != "superadmin" {
		t.Fatalf("unexpected principal %+v", principal)
	}
}

func TestRequireLogin(t *testing.T) {
	protected := auth.RequireLogin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/branches", nil)
	req = req.WithContext(shared.ContextWithSession(req.Context(), &shared.Session{}))
	res := httptest.NewRecorder()
	protected.ServeHTTP(res, req)
	if res.Code != http.StatusSeeOther || res.Header().Get("Location") != "/auth/login" {
		t.Fatalf("expected redirect to login, got %d %q", res.Code, res.Header().Get("Location"))
	}

	sess := &shared.Session{}
	shared.PersistAuth(sess, shared.AuthData{Token: "t", UserID: "u-1"})
	req = httptest.NewRequest(http.MethodGet, "/branches", nil)
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	res = httptest.NewRecorder()
	protected.ServeHTTP(res, req)
	if res.Code != http.StatusNoContent {
		t.Fatalf("expected pass-through, got %d", res.Code)
	}
}
