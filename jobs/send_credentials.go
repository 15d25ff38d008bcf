package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/kaizen-academy/kaizen-admin/internal/jobs"
	"github.com/kaizen-academy/kaizen-admin/internal/shared"
)

// CredentialSender performs the backend send-credentials call.
type CredentialSender interface {
	SendCredentials(ctx context.Context, coachID string) error
}

// TokenInvalidator is implemented by token sources that cache tokens.
type TokenInvalidator interface {
	Invalidate()
}

// SendCredentialsJob delivers queued coach credential emails.
type SendCredentialsJob struct {
	Sender  CredentialSender
	Tokens  TokenInvalidator
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewSendCredentialsJob wires dependencies for the handler.
func NewSendCredentialsJob(sender CredentialSender, tokens TokenInvalidator, logger *slog.Logger, metrics *jobmetrics.Metrics) *SendCredentialsJob {
	return &SendCredentialsJob{Sender: sender, Tokens: tokens, Logger: logger, Metrics: metrics}
}

// Handle processes TaskSendCoachCredentials tasks.
func (j *SendCredentialsJob) Handle(ctx context.Context, t *asynq.Task) (err error) {
	if j == nil || j.Sender == nil {
		return errors.New("send credentials: handler not configured")
	}
	var payload SendCredentialsPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil || payload.CoachID == "" {
		return fmt.Errorf("send credentials: bad payload: %w", asynq.SkipRetry)
	}

	tracker := j.Metrics.Track(TaskSendCoachCredentials)
	defer func() { err = tracker.End(err) }()

	logger := j.logger().With(slog.String("coach_id", payload.CoachID))
	err = j.Sender.SendCredentials(ctx, payload.CoachID)
	switch {
	case err == nil:
		logger.Info("coach credentials sent")
		return nil
	case errors.Is(err, shared.ErrNotFound):
		logger.Warn("coach no longer exists", slog.Any("error", err))
		return fmt.Errorf("send credentials: %w: %w", err, asynq.SkipRetry)
	case shared.IsAuthError(err):
		if j.Tokens != nil {
			j.Tokens.Invalidate()
		}
	}
	logger.Error("send coach credentials", slog.Any("error", err))
	return err
}

func (j *SendCredentialsJob) logger() *slog.Logger {
	if j.Logger == nil {
		return slog.Default()
	}
	return j.Logger
}
