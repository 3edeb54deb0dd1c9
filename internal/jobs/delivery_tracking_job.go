package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// TrackingSchedule fires once per second.
const TrackingSchedule = "* * * * * *"

// MoveCouriersHandler runs one tracking pass.
type MoveCouriersHandler interface {
	Handle(ctx context.Context, cmd commands.MoveCouriersCommand) error
}

// DeliveryTrackingJob drives the proximity trigger. Each tick moves the
// courier of every order on the way and delivers the ones that arrived.
// A tick still running when the next one is due is skipped.
type DeliveryTrackingJob struct {
	handler MoveCouriersHandler
	metrics *metrics.Metrics
	cron    *cron.Cron
	logger  *slog.Logger

	stopOnce sync.Once
}

// NewDeliveryTrackingJob creates the tracking job. m may be nil.
func NewDeliveryTrackingJob(handler MoveCouriersHandler, m *metrics.Metrics, logger *slog.Logger) *DeliveryTrackingJob {
	return &DeliveryTrackingJob{
		handler: handler,
		metrics: m,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "delivery_tracking_job"),
	}
}

// Start schedules the job. Ticks run with ctx, and the job stops by itself
// once ctx is done.
func (j *DeliveryTrackingJob) Start(ctx context.Context) error {
	_, err := j.cron.AddFunc(TrackingSchedule, func() { j.tick(ctx) })
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(ctx, "Delivery tracking job started (running every second)")

	go func() {
		<-ctx.Done()
		j.Stop()
	}()
	return nil
}

// Stop halts the schedule and waits for a running tick to finish.
func (j *DeliveryTrackingJob) Stop() {
	j.stopOnce.Do(func() {
		<-j.cron.Stop().Done()
		j.logger.Info("Delivery tracking job stopped")
	})
}

func (j *DeliveryTrackingJob) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	err := j.handler.Handle(ctx, commands.NewMoveCouriersCommand())
	if j.metrics != nil {
		j.metrics.ObserveTrackingTick(err, time.Since(start))
	}

	if err != nil {
		j.logger.ErrorContext(ctx, "Delivery tracking job failed", "error", err)
	}
}
