package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/HatcheryOps_Go/internal/event"
	"github.com/osse101/HatcheryOps_Go/internal/metrics"
	"github.com/osse101/HatcheryOps_Go/internal/sse"
	"github.com/osse101/HatcheryOps_Go/internal/worker"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus         event.Bus
	SSEHub           *sse.Hub
	SlotUnlockWorker *worker.SlotUnlockWorker
}

// RegisterEventHandlers subscribes the metrics collector, the SSE fan-out and
// the slot unlock notifier to the bus.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	sse.NewSubscriber(deps.SSEHub, deps.EventBus).Subscribe()
	slog.Info(LogMsgSSESubscriberRegistered)

	if deps.SlotUnlockWorker != nil {
		deps.SlotUnlockWorker.Subscribe(deps.EventBus)
		slog.Info(LogMsgSlotUnlockWorkerRegistered)
	}

	return nil
}
