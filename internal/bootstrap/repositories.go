package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/HatcheryOps_Go/internal/database/postgres"
	"github.com/osse101/HatcheryOps_Go/internal/hatchery"
	"github.com/osse101/HatcheryOps_Go/internal/notification"
	"github.com/osse101/HatcheryOps_Go/internal/purchase"
	"github.com/osse101/HatcheryOps_Go/internal/user"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Profiles      user.Repository
	Hatcheries    hatchery.Repository
	Purchases     purchase.Repository
	Notifications notification.Repository
}

// InitializeRepositories creates the Postgres repositories
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Profiles:      postgres.NewProfileRepository(dbPool),
		Hatcheries:    postgres.NewHatcheryRepository(dbPool),
		Purchases:     postgres.NewPurchaseRepository(dbPool),
		Notifications: postgres.NewNotificationRepository(dbPool),
	}
}
