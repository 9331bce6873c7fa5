package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/HatcheryOps_Go/internal/auth"
	"github.com/osse101/HatcheryOps_Go/internal/bootstrap"
	"github.com/osse101/HatcheryOps_Go/internal/config"
	"github.com/osse101/HatcheryOps_Go/internal/database"
	"github.com/osse101/HatcheryOps_Go/internal/handler"
	"github.com/osse101/HatcheryOps_Go/internal/hatchery"
	"github.com/osse101/HatcheryOps_Go/internal/notification"
	"github.com/osse101/HatcheryOps_Go/internal/purchase"
	"github.com/osse101/HatcheryOps_Go/internal/scheduler"
	"github.com/osse101/HatcheryOps_Go/internal/server"
	"github.com/osse101/HatcheryOps_Go/internal/sse"
	"github.com/osse101/HatcheryOps_Go/internal/storage"
	"github.com/osse101/HatcheryOps_Go/internal/user"
	"github.com/osse101/HatcheryOps_Go/internal/worker"
	"github.com/osse101/HatcheryOps_Go/migrations"
)

const (
	shutdownTimeout = 15 * time.Second
	workerPoolSize  = 2
	workerQueueSize = 16
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogFile(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	if warnings, err := config.ValidateEnvWithWarnings(); err != nil {
		slog.Warn("Environment validation failed", "error", err)
	} else {
		for _, w := range warnings {
			slog.Warn("Environment warning", "detail", w)
		}
	}

	if err := run(cfg); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdle, cfg.DBMaxConnLife)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if err := database.Migrate(ctx, dbPool, migrations.FS); err != nil {
		return err
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	if err != nil {
		return err
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	userService := user.NewService(repos.Profiles, publisher, user.CacheConfig{
		Size: cfg.ProfileCacheSize,
		TTL:  cfg.ProfileCacheTTL,
	})
	hatcheryService := hatchery.NewService(repos.Hatcheries, userService, store, publisher, nil, nil, hatchery.Config{
		CycleLength:    cfg.CycleLength(),
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	purchaseService := purchase.NewService(repos.Purchases, userService, publisher, "")
	notificationService := notification.NewService(repos.Notifications, publisher, cfg.StoryTTL)

	sseHub := sse.NewHub()
	sseHub.Start()

	unlockWorker := worker.NewSlotUnlockWorker(notificationService, hatcheryService)
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:         eventBus,
		SSEHub:           sseHub,
		SlotUnlockWorker: unlockWorker,
	}); err != nil {
		return err
	}
	unlockWorker.Start(ctx)

	pool := worker.NewPool(workerPoolSize, workerQueueSize)
	pool.Start()
	sched := scheduler.New(pool)
	sched.Schedule(scheduler.DefaultCycleCloseInterval, scheduler.CycleCloseJob{Closer: hatcheryService}, true)
	sched.Schedule(scheduler.DefaultStoryPurgeInterval, scheduler.StoryPurgeJob{Purger: notificationService}, false)

	opts := server.Options{
		Port:           cfg.Port,
		TrustedProxies: cfg.TrustedProxies,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}
	if cfg.Storage.Backend == config.StorageBackendLocal {
		opts.MediaDir = cfg.Storage.LocalPath
	}

	handler.InitValidator()
	srv := server.NewServer(opts, issuer, dbPool, store, server.Services{
		Users:         userService,
		Hatcheries:    hatcheryService,
		Purchases:     purchaseService,
		Notifications: notificationService,
	}, sseHub)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
			Server:             srv,
			Scheduler:          sched,
			WorkerPool:         pool,
			SlotUnlockWorker:   unlockWorker,
			SSEHub:             sseHub,
			ResilientPublisher: publisher,
		})
		return nil
	})

	return g.Wait()
}
