package repository

import (
	"context"
	"time"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

// Notification defines the interface for notification persistence.
// Listings include broadcasts and carry the per-user read time.
type Notification interface {
	CreateNotification(ctx context.Context, n *domain.Notification) error
	ListForUser(ctx context.Context, userID domain.UserID, now time.Time, limit int) ([]domain.Notification, error)
	ListActiveStories(ctx context.Context, userID domain.UserID, now time.Time) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id string, userID domain.UserID, at time.Time) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
