package repository

import (
	"context"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

// Profile defines the interface for profile persistence
type Profile interface {
	// GetProfile returns domain.ErrUserNotFound when no row exists
	GetProfile(ctx context.Context, userID domain.UserID) (*domain.Profile, error)
	UpsertProfile(ctx context.Context, profile *domain.Profile) error
	UpdateProfile(ctx context.Context, profile *domain.Profile) error
	SetSeedsCount(ctx context.Context, userID domain.UserID, seeds int) error
	ListProfiles(ctx context.Context, role string) ([]domain.Profile, error)
}
