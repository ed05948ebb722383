package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	roomStatsJob *RoomStatsJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(stats RoomStats, logger *slog.Logger) *JobManager {
	return &JobManager{
		roomStatsJob: NewRoomStatsJob(stats, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.roomStatsJob.Start(); err != nil {
		return fmt.Errorf("failed to start room stats job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs.
func (jm *JobManager) StopAll() {
	jm.roomStatsJob.Stop()
}
