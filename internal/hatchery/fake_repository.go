package hatchery

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/repository"
)

// FakeRepository is an in-memory Repository for tests. Transactions stage
// writes and apply them on Commit, so a failed commit leaves the row untouched.
type FakeRepository struct {
	mu         sync.Mutex
	hatcheries map[string]domain.Hatchery
	// CommitErr, when set, is returned by the next Commit
	CommitErr error
}

// NewFakeRepository creates an empty fake
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{hatcheries: make(map[string]domain.Hatchery)}
}

// Seed stores a hatchery as-is
func (f *FakeRepository) Seed(h domain.Hatchery) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hatcheries[h.ID] = clone(h)
}

func (f *FakeRepository) GetHatchery(ctx context.Context, id string) (*domain.Hatchery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.hatcheries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrHatcheryNotFound, id)
	}
	out := clone(h)
	return &out, nil
}

func (f *FakeRepository) GetCurrentHatchery(ctx context.Context, userID domain.UserID) (*domain.Hatchery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var best *domain.Hatchery
	for _, h := range f.hatcheries {
		if h.UserID != userID {
			continue
		}
		h := h
		if best == nil || newer(h, *best) {
			best = &h
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: no cycle for %s", domain.ErrHatcheryNotFound, userID)
	}
	out := clone(*best)
	return &out, nil
}

// newer orders active cycles first, then by start date
func newer(a, b domain.Hatchery) bool {
	aActive := a.Status == domain.HatcheryStatusActive
	bActive := b.Status == domain.HatcheryStatusActive
	if aActive != bActive {
		return aActive
	}
	return a.StartDate.After(b.StartDate)
}

func (f *FakeRepository) CreateHatchery(ctx context.Context, h *domain.Hatchery) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if h.Status == domain.HatcheryStatusActive {
		for _, existing := range f.hatcheries {
			if existing.UserID == h.UserID && existing.Status == domain.HatcheryStatusActive {
				return fmt.Errorf("%w: seller already has an active hatchery", domain.ErrInvalidInput)
			}
		}
	}
	h.CreatedAt = h.StartDate
	h.UpdatedAt = h.StartDate
	f.hatcheries[h.ID] = clone(*h)
	return nil
}

func (f *FakeRepository) ListHatcheries(ctx context.Context, status string) ([]domain.Hatchery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Hatchery{}
	for _, h := range f.hatcheries {
		if status == "" || h.Status == status {
			out = append(out, clone(h))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (f *FakeRepository) ListDueForClose(ctx context.Context, now time.Time) ([]domain.Hatchery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Hatchery{}
	for _, h := range f.hatcheries {
		if h.Status == domain.HatcheryStatusActive && !h.EndDate.After(now) {
			out = append(out, clone(h))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndDate.Before(out[j].EndDate) })
	return out, nil
}

func (f *FakeRepository) BeginTx(ctx context.Context) (repository.HatcheryTx, error) {
	return &fakeTx{repo: f, staged: make(map[string]domain.Hatchery)}, nil
}

type fakeTx struct {
	repo   *FakeRepository
	staged map[string]domain.Hatchery
	closed bool
}

func (tx *fakeTx) GetHatcheryForUpdate(ctx context.Context, id string) (*domain.Hatchery, error) {
	if tx.closed {
		return nil, errors.New(domain.ErrMsgTxClosed)
	}
	if h, ok := tx.staged[id]; ok {
		out := clone(h)
		return &out, nil
	}
	return tx.repo.GetHatchery(ctx, id)
}

func (tx *fakeTx) UpdateHatchery(ctx context.Context, h *domain.Hatchery) error {
	if tx.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	tx.staged[h.ID] = clone(*h)
	return nil
}

func (tx *fakeTx) Commit(ctx context.Context) error {
	if tx.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	tx.closed = true

	tx.repo.mu.Lock()
	defer tx.repo.mu.Unlock()
	if err := tx.repo.CommitErr; err != nil {
		tx.repo.CommitErr = nil
		return err
	}
	for id, h := range tx.staged {
		tx.repo.hatcheries[id] = h
	}
	return nil
}

func (tx *fakeTx) Rollback(ctx context.Context) error {
	if tx.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	tx.closed = true
	return nil
}

func clone(h domain.Hatchery) domain.Hatchery {
	h.Images = append([]domain.HatcheryImage{}, h.Images...)
	return h
}
