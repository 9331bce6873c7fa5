package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/event"
	"github.com/osse101/HatcheryOps_Go/internal/logger"
	"github.com/osse101/HatcheryOps_Go/internal/metrics"
	"github.com/osse101/HatcheryOps_Go/internal/notification"
	"github.com/osse101/HatcheryOps_Go/internal/slots"
)

// Notifier sends the unlock notice
type Notifier interface {
	Send(ctx context.Context, req notification.SendRequest) ([]domain.Notification, error)
}

// HatcheryLister finds cycles whose timers must survive a restart
type HatcheryLister interface {
	ListHatcheries(ctx context.Context, status string) ([]domain.Hatchery, error)
}

// SlotUnlockWorker tells a seller when their next slot unlocks. Each hatchery
// has at most one pending timer: the one for the slot after the newest upload.
type SlotUnlockWorker struct {
	BaseWorker
	notifier    Notifier
	hatcheries  HatcheryLister
	unlockAfter time.Duration
	now         func() time.Time
}

// NewSlotUnlockWorker creates the worker. hatcheries may be nil to skip the
// startup restore.
func NewSlotUnlockWorker(notifier Notifier, hatcheries HatcheryLister) *SlotUnlockWorker {
	w := &SlotUnlockWorker{
		notifier:    notifier,
		hatcheries:  hatcheries,
		unlockAfter: slots.UnlockAfter,
		now:         time.Now,
	}
	w.init()
	return w
}

// Start re-arms timers for active cycles whose next slot is still counting down
func (w *SlotUnlockWorker) Start(ctx context.Context) {
	if w.hatcheries == nil {
		return
	}
	active, err := w.hatcheries.ListHatcheries(ctx, domain.HatcheryStatusActive)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgUnlockRestoreFailed, "error", err)
		return
	}
	for _, h := range active {
		last := len(h.Images) - 1
		if last < 0 || last >= domain.SlotCount-1 {
			continue
		}
		w.scheduleUnlock(h.ID, h.UserID.String(), last, h.Images[last].UploadedAt)
	}
}

// Subscribe subscribes the worker to slot events
func (w *SlotUnlockWorker) Subscribe(bus event.Bus) {
	bus.Subscribe(event.ImageUploaded, w.handleImageUploaded)
	bus.Subscribe(event.ImageDeleted, w.handleCancel)
	bus.Subscribe(event.CycleClosed, w.handleCancel)
}

func (w *SlotUnlockWorker) handleImageUploaded(ctx context.Context, e event.Event) error {
	p, err := event.DecodePayload[event.ImagePayloadV1](e.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgUnlockBadPayload, "event_type", e.Type, "error", err)
		return nil
	}
	if p.SlotIndex >= domain.SlotCount-1 {
		return nil
	}
	w.scheduleUnlock(p.HatcheryID, p.UserID, p.SlotIndex, p.UploadedAt)
	return nil
}

// handleCancel drops the pending timer. A delete shifts later images down, so
// the remaining countdown no longer matches any slot.
func (w *SlotUnlockWorker) handleCancel(ctx context.Context, e event.Event) error {
	var hatcheryID string
	switch e.Type {
	case event.CycleClosed:
		p, err := event.DecodePayload[event.CycleClosedPayloadV1](e.Payload)
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgUnlockBadPayload, "event_type", e.Type, "error", err)
			return nil
		}
		hatcheryID = p.HatcheryID
	default:
		p, err := event.DecodePayload[event.ImagePayloadV1](e.Payload)
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgUnlockBadPayload, "event_type", e.Type, "error", err)
			return nil
		}
		hatcheryID = p.HatcheryID
	}

	if w.stopTimer(hatcheryID) {
		logger.FromContext(ctx).Info(LogMsgUnlockCancelled, "hatchery_id", hatcheryID)
	}
	metrics.SlotUnlocksPending.Set(float64(w.pending()))
	return nil
}

func (w *SlotUnlockWorker) scheduleUnlock(hatcheryID, userID string, uploadedIndex int, uploadedAt time.Time) {
	unlocked := uploadedIndex + 1
	wait := uploadedAt.Add(w.unlockAfter).Sub(w.now())
	if wait <= 0 {
		// Already unlocked; a late notice is noise
		return
	}

	ok := w.schedule(hatcheryID, wait, func() {
		w.notify(hatcheryID, userID, unlocked)
		metrics.SlotUnlocksPending.Set(float64(w.pending()))
	})
	if !ok {
		return
	}
	metrics.SlotUnlocksPending.Set(float64(w.pending()))
	logger.Info(LogMsgUnlockScheduled, "hatchery_id", hatcheryID, "slot", unlocked, "in", wait.Round(time.Second))
}

func (w *SlotUnlockWorker) notify(hatcheryID, userID string, slot int) {
	ctx := context.Background()
	log := logger.FromContext(ctx)

	target, err := domain.ParseUserID(userID)
	if err != nil {
		log.Warn(LogMsgUnlockSendFailed, "hatchery_id", hatcheryID, "error", err)
		return
	}

	_, err = w.notifier.Send(ctx, notification.SendRequest{
		UserIDs: []domain.UserID{target},
		Kind:    domain.NotificationKindNotice,
		Title:   fmt.Sprintf(UnlockTitleFormat, slot+1),
		Body:    fmt.Sprintf(UnlockBodyFormat, slot+1, domain.SlotCount),
	})
	if err != nil {
		log.Error(LogMsgUnlockSendFailed, "hatchery_id", hatcheryID, "error", err)
		return
	}
	log.Info(LogMsgUnlockSent, "hatchery_id", hatcheryID, "slot", slot)
}

// Pending reports the number of armed timers
func (w *SlotUnlockWorker) Pending() int {
	return w.pending()
}

// Shutdown cancels pending timers and waits for in-flight notices
func (w *SlotUnlockWorker) Shutdown(ctx context.Context) error {
	err := w.shutdownInternal(ctx, "slot unlock worker")
	metrics.SlotUnlocksPending.Set(0)
	return err
}
