package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// RoomStats exposes the live membership counters of the room registry.
type RoomStats interface {
	RoomCount() int
	SessionCount() int
}

// RoomStatsJob periodically logs how many rooms are active and how many
// sessions are subscribed. Rooms are in-memory only, so this is the one
// place their population is visible without attaching a client.
type RoomStatsJob struct {
	stats  RoomStats
	cron   *cron.Cron
	logger *slog.Logger
}

// NewRoomStatsJob creates a job that reports registry counters every 30 seconds.
func NewRoomStatsJob(stats RoomStats, logger *slog.Logger) *RoomStatsJob {
	return &RoomStatsJob{
		stats:  stats,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "room_stats_job"),
	}
}

// Start begins the periodic reporting.
func (j *RoomStatsJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		j.logger.InfoContext(ctx, "live tracking stats",
			"rooms", j.stats.RoomCount(),
			"sessions", j.stats.SessionCount(),
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Room stats job started (running every 30 seconds)")
	return nil
}

// Stop stops the reporting job.
func (j *RoomStatsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Room stats job stopped")
}
