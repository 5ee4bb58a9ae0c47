package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is a timed unit of work. Run reports its outcome to the job's own
// log file and never returns an error, so one bad run cannot take the
// scheduler down.
type Job interface {
	Name() string
	Interval() time.Duration
	Run()
}

// Scheduler runs each job on its own ticker until the context is
// cancelled. Jobs do not coordinate with each other.
type Scheduler struct {
	jobs   []Job
	logger *zap.Logger
}

// NewScheduler creates a scheduler over the given jobs.
func NewScheduler(logger *zap.Logger, jobs ...Job) *Scheduler {
	return &Scheduler{jobs: jobs, logger: logger}
}

// Start runs every job once immediately, then on its interval, and
// blocks until ctx is cancelled and all in-flight runs finish.
func (s *Scheduler) Start(ctx context.Context) {
	var wg sync.WaitGroup
	for _, job := range s.jobs {
		wg.Add(1)
		go func(job Job) {
			defer wg.Done()
			s.logger.Info("job scheduled",
				zap.String("job", job.Name()),
				zap.Duration("interval", job.Interval()))

			job.Run()
			interval := job.Interval()
			if interval <= 0 {
				interval = time.Minute
			}
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					job.Run()
				}
			}
		}(job)
	}
	wg.Wait()
}
