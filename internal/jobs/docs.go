// Package jobs provides scheduled background tasks for the escrow service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order lifecycle.
//
// # Available Jobs
//
// 1. AutoReleaseJob - Periodically sweeps for orders past their release
// deadline and disburses their custody to the helper
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(autoReleaseHandler, uowFactory, interval, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The sweep releases each candidate through the same command handler the API
// uses, so the deadline and status are re-validated inside the transaction.
// Races with concurrent releases or disputes surface as expected business
// errors and are skipped; anything else is logged.
package jobs
