package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/event"
	"github.com/osse101/HatcheryOps_Go/internal/geo"
	"github.com/osse101/HatcheryOps_Go/internal/logger"
)

// Service defines the interface for profile operations
type Service interface {
	GetProfile(ctx context.Context, userID domain.UserID) (*domain.Profile, error)
	RegisterProfile(ctx context.Context, profile domain.Profile) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID domain.UserID, update ProfileUpdate) (*domain.Profile, error)
	SetSeedsCount(ctx context.Context, userID domain.UserID, seeds int) (*domain.Profile, error)
	ListSellers(ctx context.Context) ([]domain.Profile, error)
	GetCacheStats() CacheStats
}

// ProfileUpdate carries the seller-editable fields. Nil fields are left unchanged.
type ProfileUpdate struct {
	Name     *string
	Phone    *string
	Email    *string
	Address  *string
	Location *domain.GeoPoint
}

type service struct {
	repo  Repository
	bus   event.Bus
	cache *profileCache
}

// NewService creates a profile service. bus may be nil when events are not needed.
func NewService(repo Repository, bus event.Bus, cacheConfig CacheConfig) Service {
	return &service{
		repo:  repo,
		bus:   bus,
		cache: newProfileCache(cacheConfig),
	}
}

// GetProfile returns the profile, served from cache when fresh
func (s *service) GetProfile(ctx context.Context, userID domain.UserID) (*domain.Profile, error) {
	if p, ok := s.cache.Get(userID); ok {
		logger.FromContext(ctx).Debug(LogMsgProfileCacheHit, "user_id", userID)
		return p, nil
	}

	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(p)
	return p, nil
}

// RegisterProfile creates the profile or refreshes its contact fields
func (s *service) RegisterProfile(ctx context.Context, profile domain.Profile) (*domain.Profile, error) {
	if profile.ID == "" {
		return nil, fmt.Errorf("%w: empty", domain.ErrInvalidUserID)
	}
	profile.Name = strings.TrimSpace(profile.Name)
	if err := validateName(profile.Name); err != nil {
		return nil, err
	}
	if err := validateLocation(profile.Location); err != nil {
		return nil, err
	}
	// Registration never grants privileges or seeds
	profile.Role = domain.RoleSeller
	profile.SeedsCount = 0

	if err := s.repo.UpsertProfile(ctx, &profile); err != nil {
		return nil, err
	}
	s.cache.Invalidate(profile.ID)

	logger.FromContext(ctx).Info(LogMsgProfileRegistered, "user_id", profile.ID)
	return &profile, nil
}

// UpdateProfile applies the non-nil fields of update
func (s *service) UpdateProfile(ctx context.Context, userID domain.UserID, update ProfileUpdate) (*domain.Profile, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		p.Name = name
	}
	if update.Phone != nil {
		p.Phone = strings.TrimSpace(*update.Phone)
	}
	if update.Email != nil {
		p.Email = strings.TrimSpace(*update.Email)
	}
	if update.Address != nil {
		p.Address = strings.TrimSpace(*update.Address)
	}
	if update.Location != nil {
		if err := validateLocation(update.Location); err != nil {
			return nil, err
		}
		loc := *update.Location
		p.Location = &loc
	}

	if err := s.repo.UpdateProfile(ctx, p); err != nil {
		return nil, err
	}
	s.cache.Invalidate(userID)

	logger.FromContext(ctx).Info(LogMsgProfileUpdated, "user_id", userID)
	return p, nil
}

// SetSeedsCount assigns seeds to a seller. A positive count lifts the upload gate.
func (s *service) SetSeedsCount(ctx context.Context, userID domain.UserID, seeds int) (*domain.Profile, error) {
	if seeds < 0 || seeds > MaxSeedsCount {
		return nil, fmt.Errorf("%w: seeds count must be between 0 and %d", domain.ErrInvalidInput, MaxSeedsCount)
	}

	if err := s.repo.SetSeedsCount(ctx, userID, seeds); err != nil {
		return nil, err
	}
	s.cache.Invalidate(userID)

	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info(LogMsgSeedsAssigned, "user_id", userID, "seeds", seeds)

	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewSeedsAssignedEvent(userID, seeds)); err != nil {
			log.Warn(LogMsgPublishSeedsFailed, "user_id", userID, "error", err)
		}
	}
	return p, nil
}

// ListSellers returns every seller profile
func (s *service) ListSellers(ctx context.Context) ([]domain.Profile, error) {
	return s.repo.ListProfiles(ctx, domain.RoleSeller)
}

// GetCacheStats reports profile cache counters
func (s *service) GetCacheStats() CacheStats {
	return s.cache.GetStats()
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name longer than %d characters", domain.ErrInvalidInput, MaxNameLength)
	}
	return nil
}

func validateLocation(p *domain.GeoPoint) error {
	if p == nil {
		return nil
	}
	return geo.FromDomain(*p).Validate()
}
