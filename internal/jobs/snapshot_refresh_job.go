package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"orderflow/internal/core/application/usecases/commands"
)

// SnapshotRefreshJob periodically rewrites the workflow snapshots of all
// live orders. Snapshots carry a TTL; without the refresh a long-quiet order
// would lose its snapshot and pay the replay cost on its next event.
type SnapshotRefreshJob struct {
	handler  commands.RefreshSnapshotsCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSnapshotRefreshJob creates a new job refreshing snapshots on the given
// cron schedule (with seconds field, e.g. "0 0 * * * *" for hourly).
func NewSnapshotRefreshJob(
	handler commands.RefreshSnapshotsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *SnapshotRefreshJob {
	return &SnapshotRefreshJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "snapshot_refresh_job"),
	}
}

// Start begins the snapshot refresh job on its configured schedule.
func (j *SnapshotRefreshJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewRefreshSnapshotsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Snapshot refresh job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Snapshot refresh job started",
		"schedule", j.schedule)
	return nil
}

// Stop stops the snapshot refresh job.
func (j *SnapshotRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Snapshot refresh job stopped")
}
