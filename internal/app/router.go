package app

import (
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/kaizen-academy/kaizen-admin/internal/auth"
	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/branches"
	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/coaches"
	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/courses"
	mdshared "github.com/kaizen-academy/kaizen-admin/internal/masterdata/shared"
	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/students"
	"github.com/kaizen-academy/kaizen-admin/internal/observability"
	"github.com/kaizen-academy/kaizen-admin/internal/reports"
	reportshttp "github.com/kaizen-academy/kaizen-admin/internal/reports/http"
	"github.com/kaizen-academy/kaizen-admin/internal/shared"
	"github.com/kaizen-academy/kaizen-admin/internal/view"
	"github.com/kaizen-academy/kaizen-admin/jobs"
	"github.com/kaizen-academy/kaizen-admin/web"
)

const loginAttemptsPerMinute = 10

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	Templates      *view.Engine
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	Metrics        *observability.Metrics

	AuthHandler    *auth.Handler
	BranchHandler  *branches.Handler
	CoachHandler   *coaches.Handler
	CourseHandler  *courses.Handler
	StudentHandler *students.Handler
	ReportHandler  *reportshttp.Handler
	JobHandler     *jobs.Handler
}

type homeLink struct {
	Label       string
	Description string
	URL         string
}

// NewRouter constructs the chi.Router with the dashboard defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	if params.AuthHandler != nil {
		r.Route("/auth", func(r chi.Router) {
			r.Use(httprate.LimitByIP(loginAttemptsPerMinute, time.Minute))
			params.AuthHandler.MountRoutes(r)
		})
	}

	appEnv := "development"
	if params.Config != nil {
		appEnv = params.Config.AppEnv
	}
	home := mdshared.Pages{Logger: params.Logger, Templates: params.Templates, CSRF: params.CSRFManager, Title: "Kaizen Academy"}

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireLogin)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			home.Render(w, r, "pages/home.html", map[string]any{
				"Links":      homeLinks(),
				"AppEnv":     appEnv,
				"Categories": reports.Categories,
			}, http.StatusOK)
		})

		if params.BranchHandler != nil {
			r.Route("/branches", params.BranchHandler.MountRoutes)
		}
		if params.CoachHandler != nil {
			r.Route("/coaches", params.CoachHandler.MountRoutes)
		}
		if params.CourseHandler != nil {
			r.Route("/courses", params.CourseHandler.MountRoutes)
		}
		if params.StudentHandler != nil {
			r.Route("/students", params.StudentHandler.MountRoutes)
		}
		if params.ReportHandler != nil {
			r.Route("/reports", params.ReportHandler.MountRoutes)
		}
		if params.JobHandler != nil {
			r.Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	return r
}

func homeLinks() []homeLink {
	return []homeLink{
		{Label: "Branches", Description: "Dojo locations, managers and the courses each one runs.", URL: "/branches"},
		{Label: "Coaches", Description: "Instructor profiles, assignments and login credentials.", URL: "/coaches"},
		{Label: "Students", Description: "Enrolments across branches and courses.", URL: "/students"},
		{Label: "Courses", Description: "The martial arts catalogue offered by the academy.", URL: "/courses"},
		{Label: "Reports", Description: "Filterable category reports with CSV and Excel export.", URL: "/reports"},
	}
}

// staticCacheHandler wraps a file server with Cache-Control headers.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
