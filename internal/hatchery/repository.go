package hatchery

import (
	"context"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/repository"
)

// Repository is a local interface for hatchery persistence
type Repository interface {
	repository.Hatchery
}

// ProfileReader supplies the seed count that gates uploads and the hatchery site
type ProfileReader interface {
	GetProfile(ctx context.Context, userID domain.UserID) (*domain.Profile, error)
}
