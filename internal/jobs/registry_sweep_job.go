package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the sweep every 30 seconds.
const DefaultSweepSchedule = "*/30 * * * * *"

// Sweeper drops subscribers whose connections are already closed.
type Sweeper interface {
	Sweep() int
}

// RegistrySweepJob periodically removes closed subscribers that no broadcast
// has touched since they disconnected.
type RegistrySweepJob struct {
	sweeper  Sweeper
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewRegistrySweepJob creates the job. An empty schedule means DefaultSweepSchedule.
// The schedule uses the six-field format with seconds.
func NewRegistrySweepJob(sweeper Sweeper, schedule string, logger *slog.Logger) *RegistrySweepJob {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return &RegistrySweepJob{
		sweeper:  sweeper,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "registry_sweep_job"),
	}
}

// Start schedules the sweep.
func (j *RegistrySweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.Run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Registry sweep job started", "schedule", j.schedule)
	return nil
}

// Run performs one sweep.
func (j *RegistrySweepJob) Run() {
	if removed := j.sweeper.Sweep(); removed > 0 {
		j.logger.InfoContext(context.Background(), "Removed closed subscribers", "count", removed)
	}
}

// Stop stops scheduling and waits for a running sweep to finish.
func (j *RegistrySweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Registry sweep job stopped")
}
