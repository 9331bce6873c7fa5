package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/osse101/HatcheryOps_Go/internal/worker"
)

// MockJob is a simple job for testing
type MockJob struct {
	RunCount atomic.Int32
	Done     chan struct{}
}

func (m *MockJob) Process(ctx context.Context) error {
	m.RunCount.Add(1)
	// Signal that job ran
	select {
	case m.Done <- struct{}{}:
	default:
	}
	return nil
}

func TestScheduler(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Create worker pool
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	// Create scheduler
	sched := New(pool)
	defer sched.Stop()

	job := &MockJob{Done: make(chan struct{}, 10)}

	// Schedule job every 10ms
	sched.Schedule(10*time.Millisecond, job, false)

	// Wait for at least 2 runs
	timeout := time.After(time.Second)
	runCount := 0

	for runCount < 2 {
		select {
		case <-job.Done:
			runCount++
		case <-timeout:
			t.Fatal("Timeout waiting for job execution")
		}
	}

	assert.GreaterOrEqual(t, int(job.RunCount.Load()), 2)
}

func TestScheduler_RunNow(t *testing.T) {
	defer goleak.VerifyNone(t)

	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &MockJob{Done: make(chan struct{}, 1)}
	sched.Schedule(time.Hour, job, true)

	select {
	case <-job.Done:
	case <-time.After(time.Second):
		t.Fatal("runNow job did not run")
	}
}

type closerFunc func(ctx context.Context) (int, error)

func (f closerFunc) CloseDue(ctx context.Context) (int, error) { return f(ctx) }

type purgerFunc func(ctx context.Context) (int64, error)

func (f purgerFunc) PurgeExpired(ctx context.Context) (int64, error) { return f(ctx) }

func TestJobs(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, CycleCloseJob{Closer: closerFunc(func(context.Context) (int, error) { return 2, nil })}.Process(ctx))

	partial := errors.New("one failed")
	err := CycleCloseJob{Closer: closerFunc(func(context.Context) (int, error) { return 1, partial })}.Process(ctx)
	assert.ErrorIs(t, err, partial)

	assert.NoError(t, StoryPurgeJob{Purger: purgerFunc(func(context.Context) (int64, error) { return 0, nil })}.Process(ctx))
	assert.Error(t, StoryPurgeJob{Purger: purgerFunc(func(context.Context) (int64, error) { return 0, errors.New("db") })}.Process(ctx))

	assert.Equal(t, "cycle-close", CycleCloseJob{}.Name())
	assert.Equal(t, "story-purge", StoryPurgeJob{}.Name())
}
