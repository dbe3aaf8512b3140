package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"peermint/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	autoReleaseJob *AutoReleaseJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	autoReleaseHandler commands.AutoReleaseCommandHandler,
	uowFactory commands.OrderUoWFactory,
	autoReleaseInterval time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		autoReleaseJob: NewAutoReleaseJob(autoReleaseHandler, uowFactory, autoReleaseInterval, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.autoReleaseJob.Start(); err != nil {
		return fmt.Errorf("failed to start auto-release job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.autoReleaseJob.Stop()
}
