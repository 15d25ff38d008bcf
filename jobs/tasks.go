package jobs

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSendCoachCredentials asks the backend to email a coach their login.
	TaskSendCoachCredentials = "coach:send_credentials"
)

// Duplicate dispatches for the same coach inside this window are dropped.
const credentialsUniqueWindow = 2 * time.Minute

// SendCredentialsPayload identifies the coach to notify.
type SendCredentialsPayload struct {
	CoachID string `json:"coach_id"`
}

// NewSendCredentialsTask constructs an Asynq task.
func NewSendCredentialsTask(coachID string) (*asynq.Task, error) {
	coachID = strings.TrimSpace(coachID)
	if coachID == "" {
		return nil, errors.New("jobs: coach id required")
	}
	data, err := json.Marshal(SendCredentialsPayload{CoachID: coachID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSendCoachCredentials, data,
		asynq.MaxRetry(5),
		asynq.Unique(credentialsUniqueWindow),
	), nil
}
