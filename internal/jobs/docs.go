// Package jobs provides scheduled background tasks for the order workflow
// engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. SnapshotRefreshJob - Rewrites the workflow snapshots of all non-terminal
// orders so their TTL never lapses while the order is still live.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(refreshHandler, "0 0 * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed refresh run is logged and retried on the next tick; an individual
// order failing inside a run is skipped by the handler itself.
package jobs
