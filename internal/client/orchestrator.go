package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/slots"
)

// Source selects where Capture takes the image from
type Source string

// Capture sources
const (
	SourceCamera  Source = "camera"
	SourceGallery Source = "gallery"
)

// Permission names reported by PermissionDenied
const (
	PermissionCamera   = "camera"
	PermissionLocation = "location"
)

// ImageHandle points at a captured image on disk
type ImageHandle struct {
	Path string
	// Temporary handles are removed once submitted
	Temporary bool
}

// Name is the filename sent with the upload
func (h ImageHandle) Name() string {
	return filepath.Base(h.Path)
}

// Open opens the image for reading
func (h ImageHandle) Open() (io.ReadCloser, error) {
	return os.Open(h.Path)
}

// Permissions asks the platform for camera and location access
type Permissions interface {
	Camera(ctx context.Context) error
	Location(ctx context.Context) error
}

// Capturer obtains an image. It returns ErrCancelled when the user backs out.
type Capturer interface {
	Capture(ctx context.Context, source Source) (ImageHandle, error)
}

// Locator reports the current position
type Locator interface {
	Locate(ctx context.Context) (*domain.GeoPoint, error)
}

// API is the slice of the HTTP client the orchestrator submits through
type API interface {
	UploadImage(ctx context.Context, hatcheryID, filename string, image io.Reader, loc *domain.GeoPoint) (*Hatchery, error)
	DeleteImage(ctx context.Context, hatcheryID string, index int) (*Hatchery, error)
}

// OverrideStore persists unlock overrides between invocations
type OverrideStore interface {
	Save(o *slots.Overrides) error
}

// Orchestrator runs the upload sequence: permission checks, capture,
// best-effort geolocation, submission, then local timer seeding.
// Nothing is retried; a second upload or delete while one runs is refused.
type Orchestrator struct {
	api      API
	perms    Permissions
	capturer Capturer
	locator  Locator
	tracker  *slots.Tracker
	store    OverrideStore
	log      *slog.Logger

	inFlight atomic.Bool
	seeds    atomic.Int64
}

// NewOrchestrator wires the orchestrator. store may be nil.
func NewOrchestrator(api API, perms Permissions, capturer Capturer, locator Locator, tracker *slots.Tracker, store OverrideStore) *Orchestrator {
	return &Orchestrator{
		api:      api,
		perms:    perms,
		capturer: capturer,
		locator:  locator,
		tracker:  tracker,
		store:    store,
		log:      slog.Default(),
	}
}

// Tracker exposes the slot tracker for countdown rendering
func (o *Orchestrator) Tracker() *slots.Tracker {
	return o.tracker
}

// Sync loads fresh server state into the tracker
func (o *Orchestrator) Sync(h *Hatchery, seedsCount int) {
	o.seeds.Store(int64(seedsCount))
	o.tracker.Update(h.SlotInputs(), seedsCount)
}

// RequestPreconditions obtains camera and location permission before capture
func (o *Orchestrator) RequestPreconditions(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return denied(PermissionCamera, o.perms.Camera(gctx)) })
	g.Go(func() error { return denied(PermissionLocation, o.perms.Location(gctx)) })
	return g.Wait()
}

func denied(permission string, err error) error {
	if err == nil {
		return nil
	}
	var pd *PermissionDenied
	if errors.As(err, &pd) {
		return err
	}
	return &PermissionDenied{Permission: permission, Reason: err.Error()}
}

// Capture delegates to the platform picker
func (o *Orchestrator) Capture(ctx context.Context, source Source) (ImageHandle, error) {
	return o.capturer.Capture(ctx, source)
}

// ResolveLocation returns the current position, or nil when none is available.
// Failures are logged and never abort an upload.
func (o *Orchestrator) ResolveLocation(ctx context.Context) *domain.GeoPoint {
	if o.locator == nil {
		return nil
	}
	loc, err := o.locator.Locate(ctx)
	if err != nil {
		o.log.Warn("Location unavailable, uploading without it", "error", err)
		return nil
	}
	return loc
}

// Submit uploads the image. On success the slot after the uploaded one is
// locked locally until the server reflects the new timestamp.
func (o *Orchestrator) Submit(ctx context.Context, hatcheryID string, image ImageHandle, loc *domain.GeoPoint) (*Hatchery, error) {
	f, err := image.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h, err := o.api.UploadImage(ctx, hatcheryID, image.Name(), f, loc)
	if err != nil {
		return nil, err
	}

	now := o.tracker.Clock().Now()
	if uploaded := len(h.Images) - 1; uploaded >= 0 {
		o.tracker.Overrides().Seed(uploaded, now)
	}
	o.tracker.Update(h.SlotInputs(), int(o.seeds.Load()))
	o.persist()
	return h, nil
}

// Upload runs the whole sequence into the next free slot. A cancelled
// capture returns ErrCancelled with nothing mutated.
func (o *Orchestrator) Upload(ctx context.Context, hatcheryID string, source Source) (*Hatchery, error) {
	if !o.inFlight.CompareAndSwap(false, true) {
		return nil, ErrInFlight
	}
	defer o.inFlight.Store(false)

	board := o.tracker.Snapshot()
	next := board.NextIndex
	if board.Complete {
		return nil, &PreconditionNotMet{Err: domain.ErrHatcheryComplete}
	}
	if err := slots.CheckUpload(board, next); err != nil {
		return nil, &PreconditionNotMet{Err: err}
	}

	if err := o.RequestPreconditions(ctx); err != nil {
		return nil, err
	}

	image, err := o.Capture(ctx, source)
	if err != nil {
		return nil, err
	}
	if image.Temporary {
		defer os.Remove(image.Path)
	}

	loc := o.ResolveLocation(ctx)
	return o.Submit(ctx, hatcheryID, image, loc)
}

// Delete removes the image at index if the tracker reports it deletable.
// Otherwise it is refused locally without a network call.
func (o *Orchestrator) Delete(ctx context.Context, hatcheryID string, index int) (*Hatchery, error) {
	if !o.inFlight.CompareAndSwap(false, true) {
		return nil, ErrInFlight
	}
	defer o.inFlight.Store(false)

	if err := slots.CheckDelete(o.tracker.Snapshot(), index); err != nil {
		return nil, &PreconditionNotMet{Err: err}
	}

	h, err := o.api.DeleteImage(ctx, hatcheryID, index)
	if err != nil {
		return nil, err
	}

	o.tracker.Overrides().ClearAfter(index)
	o.tracker.Update(h.SlotInputs(), int(o.seeds.Load()))
	o.persist()
	return h, nil
}

func (o *Orchestrator) persist() {
	if o.store == nil {
		return
	}
	if err := o.store.Save(o.tracker.Overrides()); err != nil {
		o.log.Warn("Failed to save unlock overrides", "error", err)
	}
}
