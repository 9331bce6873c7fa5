package repository

import (
	"context"
	"time"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

// Hatchery defines the interface for hatchery cycle persistence
type Hatchery interface {
	GetHatchery(ctx context.Context, id string) (*domain.Hatchery, error)
	// GetCurrentHatchery returns the seller's newest cycle, open or closed
	GetCurrentHatchery(ctx context.Context, userID domain.UserID) (*domain.Hatchery, error)
	CreateHatchery(ctx context.Context, h *domain.Hatchery) error
	ListHatcheries(ctx context.Context, status string) ([]domain.Hatchery, error)
	// ListDueForClose returns active cycles whose end date is not after now
	ListDueForClose(ctx context.Context, now time.Time) ([]domain.Hatchery, error)

	BeginTx(ctx context.Context) (HatcheryTx, error)
}

// HatcheryTx defines the row-locked operations used by slot mutations
type HatcheryTx interface {
	Tx
	GetHatcheryForUpdate(ctx context.Context, id string) (*domain.Hatchery, error)
	UpdateHatchery(ctx context.Context, h *domain.Hatchery) error
}
