// Package scheduler runs periodic maintenance jobs on the worker pool.
package scheduler

import (
	"sync"
	"time"

	"github.com/osse101/HatcheryOps_Go/internal/logger"
	"github.com/osse101/HatcheryOps_Go/internal/worker"
)

// Scheduler manages scheduled jobs
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	once       sync.Once
	wg         sync.WaitGroup
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval, starting immediately
// when runNow is set. A tick that finds the pool queue full is skipped.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job, runNow bool) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		if runNow {
			s.enqueue(job)
		}
		for {
			select {
			case <-ticker.C:
				s.enqueue(job)
			case <-s.quit:
				return
			}
		}
	}()
}

func (s *Scheduler) enqueue(job worker.Job) {
	if !s.workerPool.Enqueue(job) {
		logger.Debug(LogMsgTickSkipped, "job", nameOf(job))
	}
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.quit) })
	s.wg.Wait()
}

func nameOf(job worker.Job) string {
	if n, ok := job.(worker.NamedJob); ok {
		return n.Name()
	}
	return "anonymous"
}
