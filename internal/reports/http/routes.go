// Package reportshttp exposes the category reports over HTTP.
package reportshttp

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/kaizen-academy/kaizen-admin/internal/shared"
)

// MountRoutes registers the report endpoints under the current route.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(10, time.Minute,
		httprate.WithKeyFuncs(rateLimitKey),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)

	r.Get("/", h.handleIndex)
	r.Get("/{category}", h.handleCategory)
	r.Get("/{category}/courses", h.handleCourses)
	r.Group(func(gr chi.Router) {
		gr.Use(limiter)
		gr.Get("/{category}/export.csv", h.handleExportCSV)
		gr.Get("/{category}/export.xlsx", h.handleExportXLSX)
	})
}

func rateLimitKey(r *http.Request) (string, error) {
	sess := shared.SessionFromContext(r.Context())
	if sess != nil {
		if user := strings.TrimSpace(sess.User()); user != "" {
			return "user:" + user, nil
		}
	}
	key, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}
	return "ip:" + key, nil
}
