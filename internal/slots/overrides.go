package slots

import (
	"encoding/json"
	"sync"
	"time"
)

// Overrides holds optimistic unlock times keyed by slot index. A client seeds
// one right after a successful upload so the next slot stays locked even
// before refreshed server state shows the new timestamp.
type Overrides struct {
	mu    sync.Mutex
	until map[int]time.Time
}

// NewOverrides creates an empty override set
func NewOverrides() *Overrides {
	return &Overrides{until: make(map[int]time.Time)}
}

// Seed locks the slot after uploaded until now plus UnlockAfter.
// Returns false when uploaded is the last slot and nothing was seeded.
func (o *Overrides) Seed(uploaded int, now time.Time) bool {
	next := uploaded + 1
	if uploaded < 0 || next >= SlotCount {
		return false
	}
	o.mu.Lock()
	o.until[next] = now.Add(UnlockAfter)
	o.mu.Unlock()
	return true
}

// Set stores an explicit unlock time for index
func (o *Overrides) Set(index int, until time.Time) {
	if index < 0 || index >= SlotCount {
		return
	}
	o.mu.Lock()
	o.until[index] = until
	o.mu.Unlock()
}

// ClearAfter drops overrides for every index greater than i
func (o *Overrides) ClearAfter(i int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for idx := range o.until {
		if idx > i {
			delete(o.until, idx)
		}
	}
}

// Prune drops overrides that have expired at now and returns how many were removed
func (o *Overrides) Prune(now time.Time) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	removed := 0
	for idx, until := range o.until {
		if !now.Before(until) {
			delete(o.until, idx)
			removed++
		}
	}
	return removed
}

// Snapshot returns a copy safe to hand to Derive
func (o *Overrides) Snapshot() map[int]time.Time {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make(map[int]time.Time, len(o.until))
	for k, v := range o.until {
		out[k] = v
	}
	return out
}

// Len returns the number of active overrides
func (o *Overrides) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.until)
}

// MarshalJSON encodes the overrides as an index to timestamp object
func (o *Overrides) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Snapshot())
}

// UnmarshalJSON replaces the overrides with the decoded object
func (o *Overrides) UnmarshalJSON(data []byte) error {
	decoded := make(map[int]time.Time)
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.until = make(map[int]time.Time, len(decoded))
	for idx, until := range decoded {
		if idx >= 0 && idx < SlotCount {
			o.until[idx] = until
		}
	}
	return nil
}
