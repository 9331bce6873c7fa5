package slots

import (
	"fmt"
	"time"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

// SlotInput is what the derivation needs to know about one slot
type SlotInput struct {
	UploadedAt *time.Time
	Rejected   bool
}

// SlotView is the derived state of one slot at a point in time.
// For a filled slot Remaining is what is left of the delete window; for a
// counting-down slot it is the time until the slot unlocks.
type SlotView struct {
	Index       int           `json:"index"`
	State       State         `json:"state"`
	Deletable   bool          `json:"deletable"`
	Remaining   time.Duration `json:"-"`
	RemainingMs int64         `json:"remainingMs"`
	Countdown   string        `json:"countdown,omitempty"`
}

// Board is the derived state of all slots of a hatchery
type Board struct {
	Slots    [SlotCount]SlotView `json:"slots"`
	Complete bool                `json:"complete"`
	Gated    bool                `json:"gated"`
	// NextIndex is the first empty slot, or -1 when the board is complete
	NextIndex int       `json:"nextIndex"`
	At        time.Time `json:"at"`
}

// InputsFromImages maps a hatchery's image list onto slot inputs by position
func InputsFromImages(images []domain.HatcheryImage) [SlotCount]SlotInput {
	var in [SlotCount]SlotInput
	for i, img := range images {
		if i >= SlotCount {
			break
		}
		uploadedAt := img.UploadedAt
		in[i] = SlotInput{UploadedAt: &uploadedAt, Rejected: img.IsRejected()}
	}
	return in
}

// Derive computes every slot's state from upload timestamps, the current time,
// any local unlock overrides and the seller's seed count. It has no side effects:
// identical arguments always produce an identical Board.
//
// When an override and the timestamp computation disagree, the longer wait wins.
func Derive(inputs [SlotCount]SlotInput, now time.Time, overrides map[int]time.Time, seedsCount int) Board {
	board := Board{
		Gated:     seedsCount <= 0,
		NextIndex: -1,
		At:        now,
	}

	filled := 0
	for i := range inputs {
		view := deriveSlot(inputs, i, now, overrides, board.Gated)
		if view.State == StateFilled {
			filled++
		} else if board.NextIndex < 0 {
			board.NextIndex = i
		}
		board.Slots[i] = view
	}
	board.Complete = filled == SlotCount

	return board
}

func deriveSlot(inputs [SlotCount]SlotInput, i int, now time.Time, overrides map[int]time.Time, gated bool) SlotView {
	view := SlotView{Index: i}

	if at := inputs[i].UploadedAt; at != nil {
		view.State = StateFilled
		elapsed := now.Sub(*at)
		view.Deletable = elapsed < DeleteWindow || inputs[i].Rejected
		if elapsed < DeleteWindow {
			view.setRemaining(clamp(DeleteWindow-elapsed, DeleteWindow))
		}
		return view
	}

	if gated {
		view.State = StateGated
		return view
	}

	var remaining time.Duration
	switch {
	case i == 0:
		view.State = StateUnlockedEmpty
	case inputs[i-1].UploadedAt == nil:
		view.State = StateLockedAwaitingPrevious
		return view
	default:
		elapsed := now.Sub(*inputs[i-1].UploadedAt)
		if elapsed >= UnlockAfter {
			view.State = StateUnlockedEmpty
		} else {
			view.State = StateLockedCountingDown
			remaining = clamp(UnlockAfter-elapsed, UnlockAfter)
		}
	}

	if until, ok := overrides[i]; ok && now.Before(until) {
		if wait := until.Sub(now); wait > remaining {
			view.State = StateLockedCountingDown
			remaining = wait
		}
	}

	if view.State == StateLockedCountingDown {
		view.setRemaining(remaining)
	}
	return view
}

func (v *SlotView) setRemaining(d time.Duration) {
	v.Remaining = d
	v.RemainingMs = d.Milliseconds()
	v.Countdown = FormatCountdown(d)
}

// clamp bounds d to [0, upper]
func clamp(d, upper time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if d > upper {
		return upper
	}
	return d
}

// FormatCountdown renders a remaining duration as MM:SS, rounding partial seconds up
// so a slot never shows 00:00 while still locked.
func FormatCountdown(d time.Duration) string {
	if d <= 0 {
		return "00:00"
	}
	secs := int64((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// CheckUpload reports why slot i cannot take an upload, or nil if it can
func CheckUpload(board Board, i int) error {
	if i < 0 || i >= SlotCount {
		return fmt.Errorf("%w: %d", domain.ErrSlotIndexOutOfRange, i)
	}
	if board.Gated {
		return domain.ErrSeedsNotAssigned
	}
	if board.Complete {
		return domain.ErrHatcheryComplete
	}

	slot := board.Slots[i]
	switch slot.State {
	case StateFilled:
		return fmt.Errorf("%w: slot %d", domain.ErrSlotOccupied, i+1)
	case StateLockedAwaitingPrevious:
		return fmt.Errorf("%w: upload slot %d first", domain.ErrSlotLocked, i)
	case StateLockedCountingDown:
		return fmt.Errorf("%w: unlocks in %s", domain.ErrSlotLocked, slot.Countdown)
	}
	return nil
}

// CheckDelete reports why the image in slot i cannot be deleted, or nil if it can
func CheckDelete(board Board, i int) error {
	if i < 0 || i >= SlotCount {
		return fmt.Errorf("%w: %d", domain.ErrSlotIndexOutOfRange, i)
	}
	slot := board.Slots[i]
	if slot.State != StateFilled {
		return fmt.Errorf("%w: slot %d", domain.ErrSlotEmpty, i+1)
	}
	if !slot.Deletable {
		return domain.ErrDeleteWindowExpired
	}
	return nil
}
