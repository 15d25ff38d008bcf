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

	"github.com/kaizen-academy/kaizen-admin/internal/app"
	"github.com/kaizen-academy/kaizen-admin/internal/backend"
	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/coaches"
	"github.com/kaizen-academy/kaizen-admin/internal/observability"
	"github.com/kaizen-academy/kaizen-admin/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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
	if cfg.ServiceEmail == "" || cfg.ServicePassword == "" {
		logger.Error("worker requires SERVICE_EMAIL and SERVICE_PASSWORD")
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	metricsServer := &http.Server{
		Addr:              cfg.WorkerMetricsAddr,
		Handler:           metrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("serving worker metrics", slog.String("addr", cfg.WorkerMetricsAddr))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server", slog.Any("error", err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	client := backend.NewClient(cfg.APIBaseURL, cfg.APITimeout, logger)
	account := jobs.NewServiceAccount(client, cfg.ServiceEmail, cfg.ServicePassword)
	coachRepo := coaches.NewRepository(client.As(account))
	credentialsJob := jobs.NewSendCredentialsJob(coachRepo, account, logger, metrics.Jobs())

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:   cfg.Redis().Asynq(),
		Logger:      logger,
		Concurrency: cfg.WorkerConcurrency,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskSendCoachCredentials, Handler: credentialsJob.Handle},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
