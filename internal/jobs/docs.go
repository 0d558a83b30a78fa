// Package jobs provides scheduled background tasks for the saga orchestrator.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the order saga.
//
// # Available Jobs
//
// 1. OrderDeadlineJob - Runs every 30 seconds to escalate orders stuck in
// Submitted past the configured deadline to the compensation topic.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(sweepHandler, orderDeadline, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Sweep failures are logged and retried on the next tick; escalation of an
// individual order is best effort and never aborts the sweep.
package jobs
