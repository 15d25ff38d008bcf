package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/kaizen-academy/kaizen-admin/internal/app"
	"github.com/kaizen-academy/kaizen-admin/internal/auth"
	"github.com/kaizen-academy/kaizen-admin/internal/backend"
	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/branches"
	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/coaches"
	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/courses"
	mdshared "github.com/kaizen-academy/kaizen-admin/internal/masterdata/shared"
	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/students"
	"github.com/kaizen-academy/kaizen-admin/internal/observability"
	"github.com/kaizen-academy/kaizen-admin/internal/platform/cache"
	"github.com/kaizen-academy/kaizen-admin/internal/reports"
	reportshttp "github.com/kaizen-academy/kaizen-admin/internal/reports/http"
	"github.com/kaizen-academy/kaizen-admin/internal/shared"
	"github.com/kaizen-academy/kaizen-admin/internal/view"
	"github.com/kaizen-academy/kaizen-admin/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.Redis())
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "kaizen_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}
	pages := func(title string) mdshared.Pages {
		return mdshared.Pages{Logger: logger, Templates: templates, CSRF: csrfManager, Title: title}
	}

	client := backend.NewClient(cfg.APIBaseURL, cfg.APITimeout, logger)
	api := client.As(shared.NewSessionTokens())

	authHandler := auth.NewHandler(logger, auth.NewService(client), templates, sessionManager, csrfManager)

	reportCache := cache.NewVersioned(redisClient, "reports", cfg.ReportsCacheTTL)
	go reportCache.ListenForInvalidation(ctx)

	courseService := courses.NewService(courses.NewRepository(api))
	branchService := branches.NewService(branches.NewRepository(api), courseService, reportCache, logger)
	coachService := coaches.NewService(coaches.NewRepository(api), branchService, courseService, logger)
	studentService := students.NewService(students.NewRepository(api, client), branchService, courseService, logger)

	if cfg.JobsEnabled {
		queue, err := jobs.NewClient(cfg.Redis().Asynq())
		if err != nil {
			logger.Error("init job client", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := queue.Close(); err != nil {
				logger.Warn("job client close", slog.Any("error", err))
			}
		}()
		coachService = coachService.WithQueue(queue)
	}

	sources := reports.SourceConfig{
		Default:           cfg.ReportsSource,
		FixtureCategories: reports.ParseCategories(cfg.ReportsFixtureCategories),
	}
	panels := reports.NewPanels(api, sources, time.Now)
	reportService := reports.NewService(panels, sources, reports.NewLiveDirectory(api), reportCache, logger)

	inspector := asynq.NewInspector(cfg.Redis().Asynq())
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		Templates:      templates,
		SessionManager: sessionManager,
		CSRFManager:    csrfManager,
		Metrics:        metrics,
		AuthHandler:    authHandler,
		BranchHandler:  branches.NewHandler(logger, branchService, pages("Branches")),
		CoachHandler:   coaches.NewHandler(logger, coachService, pages("Coaches")),
		CourseHandler:  courses.NewHandler(logger, courseService, pages("Courses")),
		StudentHandler: students.NewHandler(logger, studentService, pages("Students")),
		ReportHandler:  reportshttp.NewHandler(logger, reportService, pages("Reports")),
		JobHandler:     jobs.NewHandler(inspector, logger),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("reports_source", cfg.ReportsSource))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
