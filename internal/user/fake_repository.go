package user

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

// FakeRepository is a stateful in-memory implementation of Repository for tests.
// It mirrors the postgres upsert semantics: role and seeds survive re-registration.
type FakeRepository struct {
	mu       sync.Mutex
	profiles map[domain.UserID]domain.Profile
	Reads    int
}

// NewFakeRepository creates an empty fake
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{profiles: make(map[domain.UserID]domain.Profile)}
}

// Seed stores a profile as-is
func (f *FakeRepository) Seed(p domain.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[p.ID] = p
}

func (f *FakeRepository) GetProfile(ctx context.Context, userID domain.UserID) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Reads++
	p, ok := f.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	return &p, nil
}

func (f *FakeRepository) UpsertProfile(ctx context.Context, profile *domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	if existing, ok := f.profiles[profile.ID]; ok {
		profile.Role = existing.Role
		profile.SeedsCount = existing.SeedsCount
		profile.CreatedAt = existing.CreatedAt
		if profile.Location == nil {
			profile.Location = existing.Location
		}
	} else {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	f.profiles[profile.ID] = *profile
	return nil
}

func (f *FakeRepository) UpdateProfile(ctx context.Context, profile *domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[profile.ID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, profile.ID)
	}
	profile.UpdatedAt = time.Now()
	f.profiles[profile.ID] = *profile
	return nil
}

func (f *FakeRepository) SetSeedsCount(ctx context.Context, userID domain.UserID, seeds int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	p.SeedsCount = seeds
	f.profiles[userID] = p
	return nil
}

func (f *FakeRepository) ListProfiles(ctx context.Context, role string) ([]domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Profile{}
	for _, p := range f.profiles {
		if role == "" || p.Role == role {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
