// Package hatchery runs seller growing cycles: creation, slot-gated image
// uploads and deletes, admin review, and cycle closing.
package hatchery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/HatcheryOps_Go/internal/auth"
	"github.com/osse101/HatcheryOps_Go/internal/concurrency"
	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/event"
	"github.com/osse101/HatcheryOps_Go/internal/geo"
	"github.com/osse101/HatcheryOps_Go/internal/logger"
	"github.com/osse101/HatcheryOps_Go/internal/metrics"
	"github.com/osse101/HatcheryOps_Go/internal/repository"
	"github.com/osse101/HatcheryOps_Go/internal/slots"
	"github.com/osse101/HatcheryOps_Go/internal/storage"
)

// Service defines the interface for hatchery operations
type Service interface {
	GetOrCreate(ctx context.Context, userID domain.UserID) (*domain.Hatchery, error)
	Create(ctx context.Context, userID domain.UserID) (*domain.Hatchery, bool, error)
	GetCurrent(ctx context.Context, userID domain.UserID) (*domain.Hatchery, error)
	Get(ctx context.Context, actor auth.Identity, hatcheryID string) (*domain.Hatchery, error)
	GetBoard(ctx context.Context, actor auth.Identity, hatcheryID string) (*BoardView, error)
	ListHatcheries(ctx context.Context, status string) ([]domain.Hatchery, error)

	UploadImage(ctx context.Context, actor auth.Identity, hatcheryID string, upload Upload) (*domain.Hatchery, error)
	DeleteImage(ctx context.Context, actor auth.Identity, hatcheryID string, index int) (*domain.Hatchery, error)
	ReviewImage(ctx context.Context, hatcheryID string, index int, status, feedback string) (*domain.Hatchery, error)
	CloseCycle(ctx context.Context, hatcheryID string, automatic bool) (*domain.Hatchery, error)
	CloseDue(ctx context.Context) (int, error)
}

// Upload is one image submission
type Upload struct {
	File     io.Reader
	Location *domain.GeoPoint
}

// BoardView pairs a hatchery with its derived slot board
type BoardView struct {
	Hatchery   *domain.Hatchery `json:"hatchery"`
	Board      slots.Board      `json:"board"`
	SeedsCount int              `json:"seedsCount"`
}

// Config holds the service tunables
type Config struct {
	CycleLength    time.Duration
	MaxUploadBytes int64
}

type service struct {
	repo     Repository
	profiles ProfileReader
	store    storage.Storage
	bus      event.Bus
	locks    *concurrency.LockManager
	clock    slots.Clock
	cfg      Config
}

// NewService creates a hatchery service
func NewService(repo Repository, profiles ProfileReader, store storage.Storage, bus event.Bus,
	locks *concurrency.LockManager, clock slots.Clock, cfg Config) Service {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	if clock == nil {
		clock = slots.NewRealClock()
	}
	return &service{
		repo:     repo,
		profiles: profiles,
		store:    store,
		bus:      bus,
		locks:    locks,
		clock:    clock,
		cfg:      cfg,
	}
}

// GetOrCreate returns the seller's current cycle, creating the first one on demand
func (s *service) GetOrCreate(ctx context.Context, userID domain.UserID) (*domain.Hatchery, error) {
	unlock := s.locks.Lock(lockPrefixUser + userID.String())
	defer unlock()

	h, err := s.repo.GetCurrentHatchery(ctx, userID)
	if err == nil {
		return h, nil
	}
	if !errors.Is(err, domain.ErrHatcheryNotFound) {
		return nil, err
	}
	return s.create(ctx, userID)
}

// Create starts a new cycle unless an open one exists, which is returned instead.
// The boolean reports whether a cycle was created.
func (s *service) Create(ctx context.Context, userID domain.UserID) (*domain.Hatchery, bool, error) {
	unlock := s.locks.Lock(lockPrefixUser + userID.String())
	defer unlock()

	current, err := s.repo.GetCurrentHatchery(ctx, userID)
	switch {
	case err == nil && !current.IsClosed(s.clock.Now()):
		return current, false, nil
	case err == nil && current.Status == domain.HatcheryStatusActive:
		// Past its end date but not yet swept by the scheduler
		logger.FromContext(ctx).Info(LogMsgExpiredCycleReplaced, "hatchery_id", current.ID)
		if _, err := s.closeCycle(ctx, current.ID, true); err != nil {
			return nil, false, err
		}
	case err != nil && !errors.Is(err, domain.ErrHatcheryNotFound):
		return nil, false, err
	}

	h, err := s.create(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	return h, true, nil
}

func (s *service) create(ctx context.Context, userID domain.UserID) (*domain.Hatchery, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	h := &domain.Hatchery{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      fmt.Sprintf("%s %s", profile.Name, now.Format(cycleNameLayout)),
		Status:    domain.HatcheryStatusActive,
		Site:      profile.Location,
		Images:    []domain.HatcheryImage{},
		StartDate: now,
		EndDate:   now.Add(s.cfg.CycleLength),
	}
	if err := s.repo.CreateHatchery(ctx, h); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgHatcheryCreated, "hatchery_id", h.ID, "user_id", userID)
	s.publish(ctx, event.NewHatcheryCreatedEvent(h))
	return h, nil
}

// GetCurrent returns the seller's newest cycle without creating one
func (s *service) GetCurrent(ctx context.Context, userID domain.UserID) (*domain.Hatchery, error) {
	return s.repo.GetCurrentHatchery(ctx, userID)
}

// Get loads a hatchery the actor may see
func (s *service) Get(ctx context.Context, actor auth.Identity, hatcheryID string) (*domain.Hatchery, error) {
	h, err := s.repo.GetHatchery(ctx, hatcheryID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(h.UserID) {
		return nil, domain.ErrForbidden
	}
	return h, nil
}

// GetBoard derives the slot board for a hatchery at the current time
func (s *service) GetBoard(ctx context.Context, actor auth.Identity, hatcheryID string) (*BoardView, error) {
	h, err := s.Get(ctx, actor, hatcheryID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetProfile(ctx, h.UserID)
	if err != nil {
		return nil, err
	}
	return &BoardView{
		Hatchery:   h,
		Board:      s.derive(h, profile.SeedsCount),
		SeedsCount: profile.SeedsCount,
	}, nil
}

// ListHatcheries lists cycles for the admin console
func (s *service) ListHatcheries(ctx context.Context, status string) ([]domain.Hatchery, error) {
	switch status {
	case "", domain.HatcheryStatusActive, domain.HatcheryStatusClosed:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	return s.repo.ListHatcheries(ctx, status)
}

// derive computes the authoritative board. Server-side derivation never has
// local overrides: the stored timestamps are the source of truth.
func (s *service) derive(h *domain.Hatchery, seeds int) slots.Board {
	return slots.Derive(slots.InputsFromImages(h.Images), s.clock.Now(), nil, seeds)
}

// UploadImage stores an image in the next free slot if the slot rules allow it
func (s *service) UploadImage(ctx context.Context, actor auth.Identity, hatcheryID string, upload Upload) (*domain.Hatchery, error) {
	log := logger.FromContext(ctx)

	if upload.Location != nil {
		if err := geo.FromDomain(*upload.Location).Validate(); err != nil {
			return nil, err
		}
	}
	img, err := storage.DetectImage(upload.File, s.cfg.MaxUploadBytes)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(lockPrefixHatchery + hatcheryID)
	defer unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	h, err := tx.GetHatcheryForUpdate(ctx, hatcheryID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(h.UserID) {
		return nil, domain.ErrForbidden
	}
	profile, err := s.profiles.GetProfile(ctx, h.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.checkUpload(h, profile.SeedsCount); err != nil {
		metrics.RecordSlotRejection(err)
		log.Info(LogMsgUploadRefused, "hatchery_id", hatcheryID, "reason", err.Error())
		return nil, err
	}

	now := s.clock.Now()
	key := storage.NewObjectKey(h.ID, img.Extension, now)
	url, err := s.store.Put(ctx, key, img.Reader(), img.Size(), img.ContentType)
	if err != nil {
		return nil, err
	}

	index := len(h.Images)
	h.Images = append(h.Images, domain.HatcheryImage{
		URL:        url,
		PublicID:   key,
		UploadedAt: now,
		Location:   upload.Location,
		DistanceKm: geo.DistanceKm(h.Site, upload.Location),
		Status:     domain.ImageStatusPending,
	})
	h.UpdatedAt = now

	if err := s.persist(ctx, tx, h); err != nil {
		if delErr := s.store.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			log.Warn(LogMsgOrphanCleanupFailed, "key", key, "error", delErr)
		}
		return nil, err
	}

	log.Info(LogMsgImageUploaded, "hatchery_id", h.ID, "slot", index, "bytes", img.Size())
	s.publish(ctx, event.NewImageUploadedEvent(h, index))
	return h, nil
}

// checkUpload applies the upload preconditions in a fixed order:
// seed gate, closed cycle, full board, then the slot timers.
func (s *service) checkUpload(h *domain.Hatchery, seeds int) error {
	board := s.derive(h, seeds)
	if board.Gated {
		return domain.ErrSeedsNotAssigned
	}
	if h.IsClosed(s.clock.Now()) {
		return domain.ErrCycleClosed
	}
	if board.Complete {
		return domain.ErrHatcheryComplete
	}
	return slots.CheckUpload(board, board.NextIndex)
}

// DeleteImage removes the image in slot index while its delete window is open
// or after an admin rejected it. Later images move down one slot.
func (s *service) DeleteImage(ctx context.Context, actor auth.Identity, hatcheryID string, index int) (*domain.Hatchery, error) {
	log := logger.FromContext(ctx)

	unlock := s.locks.Lock(lockPrefixHatchery + hatcheryID)
	defer unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	h, err := tx.GetHatcheryForUpdate(ctx, hatcheryID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(h.UserID) {
		return nil, domain.ErrForbidden
	}
	if h.Status == domain.HatcheryStatusClosed {
		metrics.RecordSlotRejection(domain.ErrCycleClosed)
		return nil, domain.ErrCycleClosed
	}

	// Seeds do not affect filled slots, so the gate is irrelevant here
	board := slots.Derive(slots.InputsFromImages(h.Images), s.clock.Now(), nil, 1)
	if err := slots.CheckDelete(board, index); err != nil {
		metrics.RecordSlotRejection(err)
		log.Info(LogMsgDeleteRefused, "hatchery_id", hatcheryID, "slot", index, "reason", err.Error())
		return nil, err
	}

	removed := h.Images[index]
	h.Images = append(h.Images[:index:index], h.Images[index+1:]...)
	h.UpdatedAt = s.clock.Now()

	if err := s.persist(ctx, tx, h); err != nil {
		return nil, err
	}

	// The row is already gone, so a stale object is only wasted space
	if err := s.store.Delete(ctx, removed.PublicID); err != nil {
		log.Warn(LogMsgObjectDeleteFailed, "key", removed.PublicID, "error", err)
	}

	log.Info(LogMsgImageDeleted, "hatchery_id", h.ID, "slot", index)
	s.publish(ctx, event.NewImageDeletedEvent(h, index))
	return h, nil
}

// ReviewImage records an admin verdict on an image
func (s *service) ReviewImage(ctx context.Context, hatcheryID string, index int, status, feedback string) (*domain.Hatchery, error) {
	if status != domain.ImageStatusApproved && status != domain.ImageStatusRejected {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidReviewStatus, status)
	}
	if index < 0 || index >= domain.SlotCount {
		return nil, fmt.Errorf("%w: %d", domain.ErrSlotIndexOutOfRange, index)
	}

	unlock := s.locks.Lock(lockPrefixHatchery + hatcheryID)
	defer unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	h, err := tx.GetHatcheryForUpdate(ctx, hatcheryID)
	if err != nil {
		return nil, err
	}
	if index >= len(h.Images) {
		return nil, fmt.Errorf("%w: slot %d", domain.ErrSlotEmpty, index+1)
	}

	h.Images[index].Status = status
	h.Images[index].AdminFeedback = feedback
	h.UpdatedAt = s.clock.Now()

	if err := s.persist(ctx, tx, h); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgImageReviewed, "hatchery_id", h.ID, "slot", index, "status", status)
	s.publish(ctx, event.NewImageReviewedEvent(h, index))
	return h, nil
}

// CloseCycle stops a cycle from accepting uploads. Closing twice is a no-op.
func (s *service) CloseCycle(ctx context.Context, hatcheryID string, automatic bool) (*domain.Hatchery, error) {
	unlock := s.locks.Lock(lockPrefixHatchery + hatcheryID)
	defer unlock()
	return s.closeCycle(ctx, hatcheryID, automatic)
}

func (s *service) closeCycle(ctx context.Context, hatcheryID string, automatic bool) (*domain.Hatchery, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	h, err := tx.GetHatcheryForUpdate(ctx, hatcheryID)
	if err != nil {
		return nil, err
	}
	if h.Status == domain.HatcheryStatusClosed {
		return h, nil
	}

	now := s.clock.Now()
	h.Status = domain.HatcheryStatusClosed
	h.UpdatedAt = now

	if err := s.persist(ctx, tx, h); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgCycleClosed, "hatchery_id", h.ID, "automatic", automatic)
	s.publish(ctx, event.NewCycleClosedEvent(h, now, automatic))
	return h, nil
}

// CloseDue closes every active cycle past its end date and reports how many closed.
// One failure does not stop the sweep.
func (s *service) CloseDue(ctx context.Context) (int, error) {
	due, err := s.repo.ListDueForClose(ctx, s.clock.Now())
	if err != nil {
		return 0, err
	}

	closed := 0
	var errs []error
	for _, h := range due {
		if err := ctx.Err(); err != nil {
			return closed, err
		}
		if _, err := s.CloseCycle(ctx, h.ID, true); err != nil {
			logger.FromContext(ctx).Error(LogMsgAutoCloseFailed, "hatchery_id", h.ID, "error", err)
			errs = append(errs, err)
			continue
		}
		closed++
	}
	return closed, errors.Join(errs...)
}

func (s *service) persist(ctx context.Context, tx repository.HatcheryTx, h *domain.Hatchery) error {
	if err := tx.UpdateHatchery(ctx, h); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
	}
}
