package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/event"
	"github.com/osse101/HatcheryOps_Go/internal/notification"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification.SendRequest
	ch   chan notification.SendRequest
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{ch: make(chan notification.SendRequest, 10)}
}

func (n *recordingNotifier) Send(ctx context.Context, req notification.SendRequest) ([]domain.Notification, error) {
	n.mu.Lock()
	n.sent = append(n.sent, req)
	n.mu.Unlock()
	n.ch <- req
	return nil, nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type staticLister []domain.Hatchery

func (l staticLister) ListHatcheries(ctx context.Context, status string) ([]domain.Hatchery, error) {
	return l, nil
}

func newTestWorker(n Notifier, lister HatcheryLister, now time.Time) *SlotUnlockWorker {
	w := NewSlotUnlockWorker(n, lister)
	w.unlockAfter = 50 * time.Millisecond
	w.now = func() time.Time { return now }
	return w
}

func uploadedEvent(hatcheryID string, userID domain.UserID, slot int, at time.Time) event.Event {
	h := &domain.Hatchery{ID: hatcheryID, UserID: userID, Images: make([]domain.HatcheryImage, slot+1)}
	h.Images[slot].UploadedAt = at
	return event.NewImageUploadedEvent(h, slot)
}

func TestSlotUnlockWorker_NotifiesAfterUnlock(t *testing.T) {
	defer goleak.VerifyNone(t)

	now := time.Now()
	notifier := newRecordingNotifier()
	w := newTestWorker(notifier, nil, now)
	bus := event.NewMemoryBus()
	w.Subscribe(bus)

	seller := domain.NewUserID()
	require.NoError(t, bus.Publish(context.Background(), uploadedEvent("h1", seller, 0, now)))
	assert.Equal(t, 1, w.Pending())

	select {
	case req := <-notifier.ch:
		assert.Equal(t, []domain.UserID{seller}, req.UserIDs)
		assert.Equal(t, "Slot 2 is unlocked", req.Title)
		assert.Equal(t, domain.NotificationKindNotice, req.Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("unlock notification not sent")
	}

	require.NoError(t, w.Shutdown(context.Background()))
	assert.Zero(t, w.Pending())
}

func TestSlotUnlockWorker_LastSlotHasNoTimer(t *testing.T) {
	defer goleak.VerifyNone(t)

	now := time.Now()
	w := newTestWorker(newRecordingNotifier(), nil, now)
	bus := event.NewMemoryBus()
	w.Subscribe(bus)

	require.NoError(t, bus.Publish(context.Background(), uploadedEvent("h1", domain.NewUserID(), domain.SlotCount-1, now)))
	assert.Zero(t, w.Pending())
	require.NoError(t, w.Shutdown(context.Background()))
}

func TestSlotUnlockWorker_DeleteCancels(t *testing.T) {
	defer goleak.VerifyNone(t)

	now := time.Now()
	notifier := newRecordingNotifier()
	w := newTestWorker(notifier, nil, now)
	w.unlockAfter = time.Hour
	bus := event.NewMemoryBus()
	w.Subscribe(bus)

	seller := domain.NewUserID()
	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, uploadedEvent("h1", seller, 0, now)))
	require.NoError(t, bus.Publish(ctx, uploadedEvent("h2", seller, 1, now)))
	assert.Equal(t, 2, w.Pending())

	h := &domain.Hatchery{ID: "h1", UserID: seller}
	require.NoError(t, bus.Publish(ctx, event.NewImageDeletedEvent(h, 0)))
	assert.Equal(t, 1, w.Pending())

	h2 := &domain.Hatchery{ID: "h2", UserID: seller}
	require.NoError(t, bus.Publish(ctx, event.NewCycleClosedEvent(h2, now, true)))
	assert.Zero(t, w.Pending())

	require.NoError(t, w.Shutdown(ctx))
	assert.Zero(t, notifier.count())
}

func TestSlotUnlockWorker_ShutdownCancelsPending(t *testing.T) {
	defer goleak.VerifyNone(t)

	now := time.Now()
	notifier := newRecordingNotifier()
	w := newTestWorker(notifier, nil, now)
	w.unlockAfter = time.Hour
	bus := event.NewMemoryBus()
	w.Subscribe(bus)

	require.NoError(t, bus.Publish(context.Background(), uploadedEvent("h1", domain.NewUserID(), 1, now)))
	require.NoError(t, w.Shutdown(context.Background()))
	require.NoError(t, w.Shutdown(context.Background()))

	// Events after shutdown arm nothing
	require.NoError(t, bus.Publish(context.Background(), uploadedEvent("h3", domain.NewUserID(), 0, now)))
	assert.Zero(t, w.Pending())
	assert.Zero(t, notifier.count())
}

func TestSlotUnlockWorker_StartRestoresTimers(t *testing.T) {
	defer goleak.VerifyNone(t)

	now := time.Now()
	seller := domain.NewUserID()
	lister := staticLister{
		// Counting down: restored
		{ID: "fresh", UserID: seller, Images: []domain.HatcheryImage{{UploadedAt: now.Add(-10 * time.Millisecond)}}},
		// Already unlocked: skipped
		{ID: "stale", UserID: seller, Images: []domain.HatcheryImage{{UploadedAt: now.Add(-time.Hour)}}},
		// No images: skipped
		{ID: "empty", UserID: seller},
		// Full board: skipped
		{ID: "full", UserID: seller, Images: make([]domain.HatcheryImage, domain.SlotCount)},
	}
	w := newTestWorker(newRecordingNotifier(), lister, now)
	w.unlockAfter = time.Hour

	w.Start(context.Background())
	assert.Equal(t, 1, w.Pending())
	require.NoError(t, w.Shutdown(context.Background()))
}
