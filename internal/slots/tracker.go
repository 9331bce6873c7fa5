package slots

import (
	"context"
	"sync"
	"time"
)

// Tracker pairs the latest known slot inputs with a clock and an override set,
// so callers can take consistent snapshots or watch the countdowns tick.
type Tracker struct {
	clock     Clock
	overrides *Overrides

	mu     sync.RWMutex
	inputs [SlotCount]SlotInput
	seeds  int
}

// NewTracker creates a tracker. A nil overrides argument starts an empty set.
func NewTracker(clock Clock, overrides *Overrides) *Tracker {
	if clock == nil {
		clock = NewRealClock()
	}
	if overrides == nil {
		overrides = NewOverrides()
	}
	return &Tracker{clock: clock, overrides: overrides}
}

// Update replaces the inputs with freshly fetched server state
func (t *Tracker) Update(inputs [SlotCount]SlotInput, seedsCount int) {
	t.mu.Lock()
	t.inputs = inputs
	t.seeds = seedsCount
	t.mu.Unlock()
}

// Overrides exposes the tracker's override set
func (t *Tracker) Overrides() *Overrides {
	return t.overrides
}

// Clock returns the tracker's time source
func (t *Tracker) Clock() Clock {
	return t.clock
}

// Snapshot prunes expired overrides and derives the board at the current time
func (t *Tracker) Snapshot() Board {
	now := t.clock.Now()
	t.overrides.Prune(now)

	t.mu.RLock()
	inputs, seeds := t.inputs, t.seeds
	t.mu.RUnlock()

	return Derive(inputs, now, t.overrides.Snapshot(), seeds)
}

// Watch calls fn with a fresh snapshot immediately and then on every interval
// until ctx is cancelled. The ticker is stopped before Watch returns.
func (t *Tracker) Watch(ctx context.Context, interval time.Duration, fn func(Board)) error {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	fn(t.Snapshot())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			fn(t.Snapshot())
		}
	}
}
