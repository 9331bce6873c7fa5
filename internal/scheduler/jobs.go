package scheduler

import (
	"context"

	"github.com/osse101/HatcheryOps_Go/internal/logger"
)

// CycleCloser closes cycles past their end date
type CycleCloser interface {
	CloseDue(ctx context.Context) (int, error)
}

// StoryPurger deletes expired stories
type StoryPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// CycleCloseJob closes every hatchery cycle whose end date has passed
type CycleCloseJob struct {
	Closer CycleCloser
}

// Name implements worker.NamedJob
func (j CycleCloseJob) Name() string { return "cycle-close" }

// Process implements worker.Job
func (j CycleCloseJob) Process(ctx context.Context) error {
	n, err := j.Closer.CloseDue(ctx)
	if n > 0 {
		logger.FromContext(ctx).Info(LogMsgCyclesClosed, "count", n)
	}
	return err
}

// StoryPurgeJob removes expired stories
type StoryPurgeJob struct {
	Purger StoryPurger
}

// Name implements worker.NamedJob
func (j StoryPurgeJob) Name() string { return "story-purge" }

// Process implements worker.Job
func (j StoryPurgeJob) Process(ctx context.Context) error {
	n, err := j.Purger.PurgeExpired(ctx)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Debug(LogMsgStoriesPurgedJob, "deleted", n)
	return nil
}
