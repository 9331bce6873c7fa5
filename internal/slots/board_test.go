package slots

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

var t0 = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	ts := t0.Add(d)
	return &ts
}

func TestDerive_FullBoard(t *testing.T) {
	inputs := [SlotCount]SlotInput{
		{UploadedAt: at(0)},
		{UploadedAt: at(7 * time.Minute)},
	}
	now := t0.Add(7*time.Minute + 30*time.Second)

	got := Derive(inputs, now, nil, 10)

	want := Board{
		Slots: [SlotCount]SlotView{
			{Index: 0, State: StateFilled},
			{Index: 1, State: StateFilled, Deletable: true, Remaining: 30 * time.Second, RemainingMs: 30000, Countdown: "00:30"},
			{Index: 2, State: StateLockedCountingDown, Remaining: 5*time.Minute + 30*time.Second, RemainingMs: 330000, Countdown: "05:30"},
			{Index: 3, State: StateLockedAwaitingPrevious},
		},
		NextIndex: 2,
		At:        now,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Derive() mismatch (-want +got):\n%s", diff)
	}
}

func TestDerive_SeedsGate(t *testing.T) {
	for _, seeds := range []int{0, -1} {
		board := Derive([SlotCount]SlotInput{}, t0.Add(time.Hour), nil, seeds)

		assert.True(t, board.Gated)
		for _, slot := range board.Slots {
			assert.Equal(t, StateGated, slot.State, "slot %d", slot.Index)
			assert.True(t, slot.State.IsLocked())
		}
		assert.ErrorIs(t, CheckUpload(board, 0), domain.ErrSeedsNotAssigned)
	}
}

func TestDerive_AwaitingPreviousRegardlessOfTime(t *testing.T) {
	inputs := [SlotCount]SlotInput{{UploadedAt: at(0)}}
	overrides := map[int]time.Time{2: t0.Add(time.Hour)}

	for _, offset := range []time.Duration{0, 6 * time.Minute, 48 * time.Hour} {
		board := Derive(inputs, t0.Add(offset), overrides, 1)
		assert.Equal(t, StateLockedAwaitingPrevious, board.Slots[2].State)
		assert.Equal(t, StateLockedAwaitingPrevious, board.Slots[3].State)
	}
}

func TestDerive_UnlockScenario(t *testing.T) {
	inputs := [SlotCount]SlotInput{{UploadedAt: at(0)}}

	board := Derive(inputs, t0.Add(5*time.Minute+59*time.Second), nil, 1)
	assert.Equal(t, StateLockedCountingDown, board.Slots[1].State)
	assert.Equal(t, time.Second, board.Slots[1].Remaining)
	assert.Equal(t, "00:01", board.Slots[1].Countdown)
	assert.ErrorIs(t, CheckUpload(board, 1), domain.ErrSlotLocked)

	board = Derive(inputs, t0.Add(6*time.Minute), nil, 1)
	assert.Equal(t, StateUnlockedEmpty, board.Slots[1].State)
	assert.Zero(t, board.Slots[1].Remaining)
	assert.Empty(t, board.Slots[1].Countdown)
	assert.NoError(t, CheckUpload(board, 1))
}

func TestDerive_DeleteWindowBoundary(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  time.Duration
		rejected bool
		want     bool
	}{
		{"just uploaded", 0, false, true},
		{"one millisecond before", DeleteWindow - time.Millisecond, false, true},
		{"exactly at window", DeleteWindow, false, false},
		{"long after", time.Hour, false, false},
		{"rejected long after", time.Hour, true, true},
		{"clock skew future upload", -10 * time.Second, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs := [SlotCount]SlotInput{{UploadedAt: at(0), Rejected: tt.rejected}}
			board := Derive(inputs, t0.Add(tt.elapsed), nil, 1)

			assert.Equal(t, tt.want, board.Slots[0].Deletable)
			if tt.want {
				assert.NoError(t, CheckDelete(board, 0))
			} else {
				err := CheckDelete(board, 0)
				require.ErrorIs(t, err, domain.ErrDeleteWindowExpired)
				assert.Equal(t, "Images can only be deleted within 1 minute of upload.", err.Error())
			}
			assert.LessOrEqual(t, board.Slots[0].Remaining, DeleteWindow)
		})
	}
}

func TestDerive_OverridePolicy(t *testing.T) {
	inputs := [SlotCount]SlotInput{{UploadedAt: at(0)}}

	t.Run("longer override keeps slot locked after six minutes", func(t *testing.T) {
		overrides := map[int]time.Time{1: t0.Add(7 * time.Minute)}
		board := Derive(inputs, t0.Add(6*time.Minute+30*time.Second), overrides, 1)

		assert.Equal(t, StateLockedCountingDown, board.Slots[1].State)
		assert.Equal(t, 30*time.Second, board.Slots[1].Remaining)
	})

	t.Run("shorter override never shortens the computed wait", func(t *testing.T) {
		overrides := map[int]time.Time{1: t0.Add(time.Minute)}
		board := Derive(inputs, t0.Add(30*time.Second), overrides, 1)

		assert.Equal(t, StateLockedCountingDown, board.Slots[1].State)
		assert.Equal(t, 5*time.Minute+30*time.Second, board.Slots[1].Remaining)
	})

	t.Run("expired override is ignored", func(t *testing.T) {
		overrides := map[int]time.Time{1: t0.Add(6 * time.Minute)}
		board := Derive(inputs, t0.Add(6*time.Minute), overrides, 1)

		assert.Equal(t, StateUnlockedEmpty, board.Slots[1].State)
	})
}

func TestDerive_ClockSkewClampsCountdown(t *testing.T) {
	inputs := [SlotCount]SlotInput{{UploadedAt: at(10 * time.Minute)}}
	board := Derive(inputs, t0, nil, 1)

	assert.Equal(t, StateLockedCountingDown, board.Slots[1].State)
	assert.Equal(t, UnlockAfter, board.Slots[1].Remaining)
	assert.Equal(t, "06:00", board.Slots[1].Countdown)
}

func TestDerive_Complete(t *testing.T) {
	inputs := InputsFromImages([]domain.HatcheryImage{
		{UploadedAt: t0},
		{UploadedAt: t0.Add(10 * time.Minute)},
		{UploadedAt: t0.Add(20 * time.Minute)},
		{UploadedAt: t0.Add(30 * time.Minute), Status: domain.ImageStatusRejected},
	})
	board := Derive(inputs, t0.Add(time.Hour), nil, 5)

	assert.True(t, board.Complete)
	assert.Equal(t, -1, board.NextIndex)
	assert.True(t, board.Slots[3].Deletable)
	assert.ErrorIs(t, CheckUpload(board, 0), domain.ErrHatcheryComplete)
}

func TestDerive_Idempotent(t *testing.T) {
	inputs := [SlotCount]SlotInput{{UploadedAt: at(0)}, {UploadedAt: at(8 * time.Minute)}}
	overrides := map[int]time.Time{2: t0.Add(20 * time.Minute)}
	now := t0.Add(9 * time.Minute)

	first := Derive(inputs, now, overrides, 3)
	second := Derive(inputs, now, overrides, 3)

	assert.True(t, cmp.Equal(first, second))
}

func TestCheckUpload(t *testing.T) {
	inputs := [SlotCount]SlotInput{{UploadedAt: at(0)}}
	board := Derive(inputs, t0.Add(time.Minute), nil, 1)

	tests := []struct {
		name  string
		index int
		want  error
	}{
		{"negative index", -1, domain.ErrSlotIndexOutOfRange},
		{"index past end", SlotCount, domain.ErrSlotIndexOutOfRange},
		{"occupied", 0, domain.ErrSlotOccupied},
		{"counting down", 1, domain.ErrSlotLocked},
		{"awaiting previous", 2, domain.ErrSlotLocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckUpload(board, tt.index)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	assert.Contains(t, CheckUpload(board, 1).Error(), "unlocks in 05:00")
}

func TestCheckDelete_EmptySlot(t *testing.T) {
	board := Derive([SlotCount]SlotInput{}, t0, nil, 1)
	assert.ErrorIs(t, CheckDelete(board, 0), domain.ErrSlotEmpty)
	assert.ErrorIs(t, CheckDelete(board, 9), domain.ErrSlotIndexOutOfRange)
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{-time.Second, "00:00"},
		{500 * time.Millisecond, "00:01"},
		{time.Second, "00:01"},
		{59 * time.Second, "00:59"},
		{time.Minute, "01:00"},
		{5*time.Minute + 59*time.Second, "05:59"},
		{UnlockAfter, "06:00"},
		{61 * time.Minute, "61:00"},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCountdown(tt.in))
		})
	}
}
