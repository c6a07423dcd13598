package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
)

// SnapshotCreator records daily snapshots, skipping days that have one.
type SnapshotCreator interface {
	CreateDailySnapshot() (*domain.Snapshot, error)
}

// DailySnapshotJob records an end-of-day portfolio snapshot.
type DailySnapshotJob struct {
	snapshots SnapshotCreator
	log       zerolog.Logger
}

// NewDailySnapshotJob creates a new daily snapshot job
func NewDailySnapshotJob(snapshots SnapshotCreator, log zerolog.Logger) *DailySnapshotJob {
	return &DailySnapshotJob{
		snapshots: snapshots,
		log:       log.With().Str("job", "daily_snapshot").Logger(),
	}
}

// Name returns the job name
func (j *DailySnapshotJob) Name() string {
	return "daily_snapshot"
}

// Run records today's snapshot unless one was already taken.
func (j *DailySnapshotJob) Run() error {
	snap, err := j.snapshots.CreateDailySnapshot()
	if err != nil {
		return err
	}
	if snap == nil {
		j.log.Debug().Msg("Snapshot already recorded today")
		return nil
	}

	j.log.Info().Float64("total_value", snap.TotalValue()).Msg("Daily snapshot recorded")
	return nil
}
