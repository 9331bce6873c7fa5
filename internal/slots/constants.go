package slots

import (
	"time"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

// SlotCount is the number of image slots tracked per hatchery
const SlotCount = domain.SlotCount

// Timer windows
const (
	// DeleteWindow is how long after upload an image may still be removed
	DeleteWindow = 60 * time.Second
	// UnlockDelay is the extra wait after the delete window before the next slot opens
	UnlockDelay = 5 * time.Minute
	// UnlockAfter is the total wait between an upload and the next slot opening
	UnlockAfter = DeleteWindow + UnlockDelay

	// DefaultWatchInterval is the countdown refresh cadence
	DefaultWatchInterval = time.Second
)

// State is the derived presentation state of one slot
type State string

// Slot states
const (
	StateUnlockedEmpty          State = "unlocked_empty"
	StateLockedAwaitingPrevious State = "locked_awaiting_previous"
	StateLockedCountingDown     State = "locked_counting_down"
	StateFilled                 State = "filled"
	StateGated                  State = "gated"
)

// IsLocked reports whether an empty slot cannot accept an upload yet
func (s State) IsLocked() bool {
	return s == StateLockedAwaitingPrevious || s == StateLockedCountingDown || s == StateGated
}
