// Package jobs provides scheduled background tasks for the route tracker.
//
// Jobs use github.com/robfig/cron/v3 with the six-field (seconds) format.
//
// # Available Jobs
//
// RegistrySweepJob removes subscribers whose connections are already closed
// from the realtime group registry. Broadcasts remove such subscribers
// lazily; the sweep covers groups that receive no events for a long time.
// The default schedule is "*/30 * * * * *".
//
// # Usage
//
//	jobManager := jobs.NewJobManager(registry, cfg.RegistrySweepSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatalf("Failed to start jobs: %v", err)
//	}
//	defer jobManager.StopAll()
package jobs
