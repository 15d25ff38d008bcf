package app

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/kaizen-academy/kaizen-admin/internal/observability"
	"github.com/kaizen-academy/kaizen-admin/internal/shared"
	"github.com/kaizen-academy/kaizen-admin/internal/view"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	templates, err := view.NewEngine()
	require.NoError(t, err)

	return NewRouter(RouterParams{
		Logger:         newLogger(&Config{AppEnv: "test"}, discard{}),
		Config:         &Config{AppEnv: "test", AppRequestTimeout: 5 * time.Second},
		Templates:      templates,
		SessionManager: shared.NewSessionManager(client, "kaizen_session", "secret", time.Hour, false),
		CSRFManager:    shared.NewCSRFManager("csrf"),
		Metrics:        observability.NewMetrics(),
	})
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, res.Code)
	require.JSONEq(t, `{"status":"ok"}`, res.Body.String())
	require.Equal(t, "nosniff", res.Header().Get("X-Content-Type-Options"))
	require.NotEmpty(t, res.Header().Get("Set-Cookie"))
}

func TestAnonymousHomeRedirectsToLogin(t *testing.T) {
	router := newTestRouter(t)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusSeeOther, res.Code)
	require.Equal(t, "/auth/login", res.Header().Get("Location"))
}

func TestPostWithoutCSRFTokenIsForbidden(t *testing.T) {
	router := newTestRouter(t)
	form := url.Values{"name": {"Pune Central"}}
	req := httptest.NewRequest(http.MethodPost, "/branches", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusForbidden, res.Code)
}

func TestStaticAssetsAreCached(t *testing.T) {
	router := newTestRouter(t)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil))

	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, "public, max-age=3600", res.Header().Get("Cache-Control"))
	require.Contains(t, res.Header().Get("Content-Type"), "text/css")
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, res.Code)
	require.Contains(t, res.Body.String(), "kaizen_http_requests_total")
}
