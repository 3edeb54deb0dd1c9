package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"fooddelivery/internal/pkg/metrics"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	deliveryTrackingJob *DeliveryTrackingJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	moveCouriersHandler MoveCouriersHandler,
	m *metrics.Metrics,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		deliveryTrackingJob: NewDeliveryTrackingJob(moveCouriersHandler, m, logger),
	}
}

// StartAll starts all scheduled jobs. They stop when ctx is done.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll(ctx context.Context) error {
	if err := jm.deliveryTrackingJob.Start(ctx); err != nil {
		return fmt.Errorf("failed to start delivery tracking job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.deliveryTrackingJob.Stop()
}
