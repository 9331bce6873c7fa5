package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/HatcheryOps_Go/internal/database"
	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/migrations"
)

var (
	testPool      *pgxpool.Pool
	terminateTest func()
	setupOnce     sync.Once
	setupErr      error
)

// startTestDatabase boots a postgres container once per package run and
// applies the embedded migrations
func startTestDatabase(ctx context.Context) (err error) {
	// testcontainers panics when Docker is unavailable
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("docker unavailable: %v", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return err
	}
	terminateTest = func() { _ = pgContainer.Terminate(context.Background()) }

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return err
	}

	testPool, err = database.NewPool(connStr, 10, time.Minute, 5*time.Minute)
	if err != nil {
		return err
	}
	return database.Migrate(ctx, testPool, migrations.FS)
}

// requirePool skips the test in -short mode or when no container could be started
func requirePool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	setupOnce.Do(func() {
		setupErr = startTestDatabase(context.Background())
	})
	if setupErr != nil {
		t.Skipf("Skipping integration test: %v", setupErr)
	}
	return testPool
}

// seedProfile inserts a profile so foreign keys resolve
func seedProfile(t *testing.T, pool *pgxpool.Pool, role string, seeds int) *domain.Profile {
	t.Helper()
	p := &domain.Profile{
		ID:         domain.NewUserID(),
		Name:       "Seller " + string(domain.NewUserID())[:8],
		Phone:      "+91 98765 43210",
		Role:       role,
		SeedsCount: seeds,
		Location:   &domain.GeoPoint{Latitude: 16.5062, Longitude: 80.648},
	}
	if err := NewProfileRepository(pool).UpsertProfile(context.Background(), p); err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}
	return p
}
