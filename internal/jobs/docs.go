// Package jobs provides scheduled background tasks for the tracking system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the tracking service.
//
// # Available Jobs
//
// 1. RoomStatsJob - Runs every 30 seconds to log live room and session counts
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required collaborators
//	jobManager := jobs.NewJobManager(registry, logger)
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
// The stats job only reads in-memory counters and cannot fail at runtime;
// a failed job start stops any already running jobs.
package jobs
