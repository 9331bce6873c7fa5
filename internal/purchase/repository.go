package purchase

import (
	"context"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/repository"
)

// Repository is a local interface for transaction persistence
type Repository interface {
	repository.Purchase
}

// ProfileReader supplies the billed seller's contact details
type ProfileReader interface {
	GetProfile(ctx context.Context, userID domain.UserID) (*domain.Profile, error)
}
