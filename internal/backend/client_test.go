package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaizen-academy/kaizen-admin/internal/shared"
)

type course struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", time.Second, nil)
}

func TestFetchUnwrapsEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/courses", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "karate", r.URL.Query().Get("category"))
		_, _ = w.Write([]byte(`{"data":[{"id":"crs-1","title":"Karate"}]}`))
	})

	got, err := Fetch[[]course](context.Background(), client.As(shared.StaticToken("tok")), PathCourses, url.Values{"category": {"karate"}})
	require.NoError(t, err)
	assert.Equal(t, []course{{ID: "crs-1", Title: "Karate"}}, got)
}

func TestFetchAcceptsBarePayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"crs-2","title":"Judo"}`))
	})

	got, err := Fetch[course](context.Background(), client.As(shared.StaticToken("tok")), Resource(PathCourses, "crs-2"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Judo", got.Title)
}

func TestSendEncodesBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Kung Fu", body["title"])
		_, _ = w.Write([]byte(`{"data":{"id":"crs-3","title":"Kung Fu"}}`))
	})

	got, err := Send[course](context.Background(), client.As(shared.StaticToken("tok")), true, Resource(PathCourses, "crs-3"), map[string]string{"title": "Kung Fu"})
	require.NoError(t, err)
	assert.Equal(t, "crs-3", got.ID)
}

func TestErrorStatusesMapToSentinels(t *testing.T) {
	cases := []struct {
		status int
		body   string
		target error
	}{
		{http.StatusUnauthorized, `{"message":"jwt expired"}`, shared.ErrUnauthorized},
		{http.StatusForbidden, `{}`, shared.ErrForbidden},
		{http.StatusNotFound, `{"detail":"Coach not found"}`, shared.ErrNotFound},
		{http.StatusUnprocessableEntity, `{"errors":{"email":"taken"}}`, ErrValidation},
		{http.StatusConflict, `{"error":"Code already used"}`, ErrValidation},
	}
	for _, tc := range cases {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(tc.body))
		})
		err := client.As(shared.StaticToken("tok")).Get(context.Background(), PathCoaches, nil, nil)
		assert.ErrorIs(t, err, tc.target, "status %d", tc.status)
	}
}

func TestAPIErrorCarriesServerMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"  Phone must be 10 digits  ","errors":{"phone":"invalid"}}`))
	})

	err := client.As(shared.StaticToken("tok")).Post(context.Background(), PathBranches, map[string]string{}, nil)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Phone must be 10 digits", apiErr.UserMessage())
	assert.Equal(t, map[string]string{"phone": "invalid"}, apiErr.Fields)
	assert.Equal(t, "Phone must be 10 digits", shared.UserSafeMessage(err))

	plain := &APIError{Method: http.MethodGet, Path: "/api/x", Status: http.StatusBadGateway}
	assert.Nil(t, plain.Unwrap())
	assert.Contains(t, plain.Error(), "status 502")
}

func TestExpiredTokenNeverLeavesTheProcess(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	err = client.As(shared.StaticToken(expired)).Get(context.Background(), PathBranches, nil, nil)
	assert.ErrorIs(t, err, shared.ErrTokenExpired)

	err = client.Delete(context.Background(), "", Resource(PathBranches, "b-1"))
	assert.ErrorIs(t, err, shared.ErrNoToken)
	assert.False(t, called)
}

func TestSuperadminLoginIsPublic(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathSuperadminLogin, r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"access_token":"svc","user":{"id":"sa-1","role":"superadmin"}}`))
	})

	resp, err := client.SuperadminLogin(context.Background(), Credentials{Email: "worker@kaizen.in", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "svc", resp.BearerToken())
	assert.Equal(t, "superadmin", resp.User.Role)
}

func TestResourceEscapesSegments(t *testing.T) {
	assert.Equal(t, "/api/coaches/a%2Fb/send-credentials", Resource(PathCoaches, "a/b", "send-credentials"))
}
