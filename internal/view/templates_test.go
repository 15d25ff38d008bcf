package view

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaizen-academy/kaizen-admin/internal/shared"
)

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine()
	assert.NoError(t, err, "Templates should parse without error")
	assert.NotNil(t, engine)
}

func TestRenderNotFoundPage(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	err = engine.Render(rr, "pages/not_found.html", TemplateData{
		Title: "Not found",
		User:  &shared.Principal{Name: "Admin"},
		Data: map[string]any{
			"What":     "Coach",
			"RetryURL": "/coaches/c-1",
			"BackURL":  "/coaches",
		},
	})
	require.NoError(t, err)
	body := rr.Body.String()
	assert.True(t, strings.Contains(body, "Coach not found"))
	assert.Contains(t, body, `href="/coaches/c-1"`)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
}
