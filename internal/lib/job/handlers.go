package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleWelcomeEmailTask delivers the welcome email of a newly registered
// user. A malformed payload is never retried; a delivery failure is, up to
// the task's MaxRetry.
func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w: %w", err, asynq.SkipRetry)
	}

	taskID, _ := asynq.GetTaskID(ctx)
	retry, _ := asynq.GetRetryCount(ctx)

	logger := j.logger.With().
		Str("task", TaskWelcome).
		Str("task_id", taskID).
		Int("retry", retry).
		Str("username", p.Username).
		Logger()

	if !j.email.Enabled() {
		logger.Warn().Msg("email delivery disabled, dropping welcome email")
		return nil
	}

	if err := j.email.SendWelcomeEmail(p.To, p.FirstName, p.Username); err != nil {
		logger.Error().Err(err).Msg("failed to send welcome email")
		return err
	}

	logger.Info().Msg("sent welcome email")
	return nil
}
