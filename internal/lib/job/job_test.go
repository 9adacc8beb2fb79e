package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/jobly/internal/config"
	"github.com/deppfellow/jobly/internal/lib/email"
)

func TestNewWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask("aliya@example.com", "Aliya", "aliya")
	require.NoError(t, err)
	assert.Equal(t, TaskWelcome, task.Type())

	var p WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, WelcomeEmailPayload{To: "aliya@example.com", FirstName: "Aliya", Username: "aliya"}, p)
}

func newTestService() *JobService {
	logger := zerolog.Nop()
	return &JobService{
		email:  email.NewClient(config.IntegrationConfig{}, &logger),
		logger: &logger,
	}
}

func TestHandleWelcomeEmailTask(t *testing.T) {
	j := newTestService()

	task, err := NewWelcomeEmailTask("aliya@example.com", "Aliya", "aliya")
	require.NoError(t, err)
	assert.NoError(t, j.Mux().ProcessTask(context.Background(), task))
}

func TestHandleWelcomeEmailTask_BadPayload(t *testing.T) {
	j := newTestService()

	err := j.handleWelcomeEmailTask(context.Background(), asynq.NewTask(TaskWelcome, []byte("{")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}
