package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/HatcheryOps_Go/internal/event"
	"github.com/osse101/HatcheryOps_Go/internal/scheduler"
	"github.com/osse101/HatcheryOps_Go/internal/server"
	"github.com/osse101/HatcheryOps_Go/internal/sse"
	"github.com/osse101/HatcheryOps_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	SlotUnlockWorker   *worker.SlotUnlockWorker
	SSEHub             *sse.Hub
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler and worker pool (finish in-flight maintenance jobs)
// 3. Unlock timers and SSE streams
// 4. Event publisher (flush pending events to ensure consistency)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	if components.SlotUnlockWorker != nil {
		if err := components.SlotUnlockWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgSlotUnlockShutdownFailed, "error", err)
		}
	}

	if components.SSEHub != nil {
		components.SSEHub.Stop()
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
