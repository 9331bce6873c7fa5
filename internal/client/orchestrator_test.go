package client

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/slots"
)

var epoch = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

type fakeAPI struct {
	mu        sync.Mutex
	uploads   int
	deletes   int
	lastLoc   *domain.GeoPoint
	result    *Hatchery
	err       error
	block     chan struct{}
	entered   chan struct{}
	deletedAt []int
}

func (f *fakeAPI) UploadImage(ctx context.Context, _, _ string, image io.Reader, loc *domain.GeoPoint) (*Hatchery, error) {
	if f.entered != nil {
		close(f.entered)
	}
	if f.block != nil {
		<-f.block
	}
	_, _ = io.Copy(io.Discard, image)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads++
	f.lastLoc = loc
	return f.result, f.err
}

func (f *fakeAPI) DeleteImage(_ context.Context, _ string, index int) (*Hatchery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	f.deletedAt = append(f.deletedAt, index)
	return f.result, f.err
}

type fakePermissions struct {
	cameraErr, locationErr error
}

func (p fakePermissions) Camera(context.Context) error   { return p.cameraErr }
func (p fakePermissions) Location(context.Context) error { return p.locationErr }

type fakeCapturer struct {
	path  string
	err   error
	calls int
}

func (c *fakeCapturer) Capture(context.Context, Source) (ImageHandle, error) {
	c.calls++
	return ImageHandle{Path: c.path}, c.err
}

type fakeLocator struct {
	point *domain.GeoPoint
	err   error
}

func (l fakeLocator) Locate(context.Context) (*domain.GeoPoint, error) { return l.point, l.err }

type memoryStore struct{ saves int }

func (s *memoryStore) Save(*slots.Overrides) error {
	s.saves++
	return nil
}

func imageAt(at time.Time) domain.HatcheryImage {
	return domain.HatcheryImage{URL: "https://cdn.example.com/i.jpg", PublicID: "p", UploadedAt: at}
}

func writeImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tray.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpegdata"), 0o600))
	return path
}

type harness struct {
	orch     *Orchestrator
	api      *fakeAPI
	capturer *fakeCapturer
	clock    *slots.SimulatedClock
	store    *memoryStore
}

func newHarness(t *testing.T, perms fakePermissions, loc fakeLocator) *harness {
	t.Helper()
	clock := slots.NewSimulatedClock(epoch)
	h := &harness{
		api:      &fakeAPI{},
		capturer: &fakeCapturer{path: writeImage(t)},
		clock:    clock,
		store:    &memoryStore{},
	}
	h.orch = NewOrchestrator(h.api, perms, h.capturer, loc, slots.NewTracker(clock, nil), h.store)
	return h
}

func TestUpload_SeedsNextSlotOverride(t *testing.T) {
	h := newHarness(t, fakePermissions{}, fakeLocator{point: &domain.GeoPoint{Latitude: 12.97, Longitude: 77.59}})
	h.orch.Sync(&Hatchery{ID: "h1"}, 3)
	h.api.result = &Hatchery{ID: "h1", Images: []domain.HatcheryImage{imageAt(epoch)}}

	got, err := h.orch.Upload(context.Background(), "h1", SourceCamera)
	require.NoError(t, err)
	assert.Len(t, got.Images, 1)
	assert.Equal(t, 1, h.api.uploads)
	require.NotNil(t, h.api.lastLoc)
	assert.InDelta(t, 12.97, h.api.lastLoc.Latitude, 1e-9)

	overrides := h.orch.Tracker().Overrides().Snapshot()
	assert.Equal(t, epoch.Add(slots.UnlockAfter), overrides[1])
	assert.Equal(t, 1, h.store.saves)

	board := h.orch.Tracker().Snapshot()
	assert.Equal(t, slots.StateFilled, board.Slots[0].State)
	assert.Equal(t, slots.StateLockedCountingDown, board.Slots[1].State)
	assert.Equal(t, "06:00", board.Slots[1].Countdown)
}

func TestUpload_LastSlotSeedsNothing(t *testing.T) {
	h := newHarness(t, fakePermissions{}, fakeLocator{})
	old := epoch.Add(-time.Hour)
	three := []domain.HatcheryImage{imageAt(old.Add(-20 * time.Minute)), imageAt(old.Add(-10 * time.Minute)), imageAt(old)}
	h.orch.Sync(&Hatchery{ID: "h1", Images: three}, 3)
	h.api.result = &Hatchery{ID: "h1", Images: append(three, imageAt(epoch))}

	_, err := h.orch.Upload(context.Background(), "h1", SourceGallery)
	require.NoError(t, err)
	assert.Zero(t, h.orch.Tracker().Overrides().Len())
	assert.True(t, h.orch.Tracker().Snapshot().Complete)
}

func TestUpload_LocalRefusals(t *testing.T) {
	tests := []struct {
		name    string
		images  []domain.HatcheryImage
		seeds   int
		wantErr error
	}{
		{"seeds not assigned", nil, 0, domain.ErrSeedsNotAssigned},
		{"next slot counting down", []domain.HatcheryImage{imageAt(epoch.Add(-2 * time.Minute))}, 2, domain.ErrSlotLocked},
		{"all slots filled", []domain.HatcheryImage{imageAt(epoch), imageAt(epoch), imageAt(epoch), imageAt(epoch)}, 2, domain.ErrHatcheryComplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, fakePermissions{}, fakeLocator{})
			h.orch.Sync(&Hatchery{ID: "h1", Images: tt.images}, tt.seeds)

			_, err := h.orch.Upload(context.Background(), "h1", SourceCamera)

			var precond *PreconditionNotMet
			require.ErrorAs(t, err, &precond)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, h.capturer.calls)
			assert.Zero(t, h.api.uploads)
		})
	}
}

func TestUpload_LockedMessageNamesCountdown(t *testing.T) {
	h := newHarness(t, fakePermissions{}, fakeLocator{})
	h.orch.Sync(&Hatchery{ID: "h1", Images: []domain.HatcheryImage{imageAt(epoch.Add(-90 * time.Second))}}, 2)

	_, err := h.orch.Upload(context.Background(), "h1", SourceCamera)
	assert.Equal(t, "This slot is still locked. Unlocks in 04:30.", Message(err))
}

func TestUpload_PermissionDenied(t *testing.T) {
	h := newHarness(t, fakePermissions{locationErr: errors.New("refused")}, fakeLocator{})
	h.orch.Sync(&Hatchery{ID: "h1"}, 1)

	_, err := h.orch.Upload(context.Background(), "h1", SourceCamera)

	var pd *PermissionDenied
	require.ErrorAs(t, err, &pd)
	assert.Equal(t, PermissionLocation, pd.Permission)
	assert.Zero(t, h.capturer.calls)
	assert.Zero(t, h.orch.Tracker().Overrides().Len())
}

func TestUpload_CancelledCaptureIsQuiet(t *testing.T) {
	h := newHarness(t, fakePermissions{}, fakeLocator{})
	h.orch.Sync(&Hatchery{ID: "h1"}, 1)
	h.capturer.err = ErrCancelled

	_, err := h.orch.Upload(context.Background(), "h1", SourceCamera)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Zero(t, h.api.uploads)
}

func TestUpload_LocationFailureStillSubmits(t *testing.T) {
	h := newHarness(t, fakePermissions{}, fakeLocator{err: ErrNoPosition})
	h.orch.Sync(&Hatchery{ID: "h1"}, 1)
	h.api.result = &Hatchery{ID: "h1", Images: []domain.HatcheryImage{imageAt(epoch)}}

	_, err := h.orch.Upload(context.Background(), "h1", SourceCamera)
	require.NoError(t, err)
	assert.Equal(t, 1, h.api.uploads)
	assert.Nil(t, h.api.lastLoc)
}

func TestUpload_ServerErrorMutatesNothing(t *testing.T) {
	h := newHarness(t, fakePermissions{}, fakeLocator{})
	h.orch.Sync(&Hatchery{ID: "h1"}, 1)
	h.api.err = &APIError{Status: 409, Message: "This hatchery cycle is closed."}

	_, err := h.orch.Upload(context.Background(), "h1", SourceCamera)
	assert.Equal(t, "This hatchery cycle is closed.", Message(err))
	assert.Zero(t, h.orch.Tracker().Overrides().Len())
	assert.Zero(t, h.store.saves)
	assert.Equal(t, slots.StateUnlockedEmpty, h.orch.Tracker().Snapshot().Slots[0].State)
}

func TestUpload_InFlightGuard(t *testing.T) {
	h := newHarness(t, fakePermissions{}, fakeLocator{})
	h.orch.Sync(&Hatchery{ID: "h1"}, 1)
	h.api.result = &Hatchery{ID: "h1", Images: []domain.HatcheryImage{imageAt(epoch)}}
	h.api.block = make(chan struct{})
	h.api.entered = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := h.orch.Upload(context.Background(), "h1", SourceCamera)
		done <- err
	}()
	<-h.api.entered

	_, err := h.orch.Upload(context.Background(), "h1", SourceCamera)
	assert.ErrorIs(t, err, ErrInFlight)
	_, err = h.orch.Delete(context.Background(), "h1", 0)
	assert.ErrorIs(t, err, ErrInFlight)

	close(h.api.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, h.api.uploads)
}

func TestDelete(t *testing.T) {
	t.Run("outside window is refused locally", func(t *testing.T) {
		h := newHarness(t, fakePermissions{}, fakeLocator{})
		h.orch.Sync(&Hatchery{ID: "h1", Images: []domain.HatcheryImage{imageAt(epoch.Add(-slots.DeleteWindow))}}, 1)

		_, err := h.orch.Delete(context.Background(), "h1", 0)
		assert.Equal(t, "Images can only be deleted within 1 minute of upload.", Message(err))
		assert.Zero(t, h.api.deletes)
	})

	t.Run("rejected image is deletable after window", func(t *testing.T) {
		h := newHarness(t, fakePermissions{}, fakeLocator{})
		img := imageAt(epoch.Add(-time.Hour))
		img.Status = domain.ImageStatusRejected
		h.orch.Sync(&Hatchery{ID: "h1", Images: []domain.HatcheryImage{img}}, 1)
		h.api.result = &Hatchery{ID: "h1"}

		_, err := h.orch.Delete(context.Background(), "h1", 0)
		require.NoError(t, err)
		assert.Equal(t, []int{0}, h.api.deletedAt)
	})

	t.Run("success clears later overrides", func(t *testing.T) {
		h := newHarness(t, fakePermissions{}, fakeLocator{})
		h.orch.Sync(&Hatchery{ID: "h1"}, 1)
		h.api.result = &Hatchery{ID: "h1", Images: []domain.HatcheryImage{imageAt(epoch)}}

		_, err := h.orch.Upload(context.Background(), "h1", SourceCamera)
		require.NoError(t, err)
		require.Equal(t, 1, h.orch.Tracker().Overrides().Len())

		h.clock.Advance(30 * time.Second)
		h.api.result = &Hatchery{ID: "h1"}
		_, err = h.orch.Delete(context.Background(), "h1", 0)
		require.NoError(t, err)

		assert.Zero(t, h.orch.Tracker().Overrides().Len())
		assert.Equal(t, slots.StateUnlockedEmpty, h.orch.Tracker().Snapshot().Slots[0].State)
		assert.Equal(t, 2, h.store.saves)
	})

	t.Run("empty slot", func(t *testing.T) {
		h := newHarness(t, fakePermissions{}, fakeLocator{})
		h.orch.Sync(&Hatchery{ID: "h1"}, 1)

		_, err := h.orch.Delete(context.Background(), "h1", 2)
		assert.ErrorIs(t, err, domain.ErrSlotEmpty)
	})
}
