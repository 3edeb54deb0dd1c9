// Package jobs provides scheduled background tasks for the delivery service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, with seconds).
//
// # Available Jobs
//
// DeliveryTrackingJob runs every second. It moves the courier of every order
// on the way a tenth of the remaining distance toward the client and marks the
// order delivered once the courier is within the arrival threshold.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(moveCouriersHandler, m, logger)
//	if err := jobManager.StartAll(ctx); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// Cancelling ctx stops every job as well. Only orders currently on the way
// are touched, so nothing keeps ticking for an order that was delivered or
// cancelled.
//
// # Error Handling
//
// A failed tick is logged and counted; the next tick retries. Conflicts with
// a concurrent manual delivery are resolved inside the command handler.
package jobs
