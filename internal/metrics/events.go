package metrics

import (
	"context"
	"errors"
	"strconv"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/event"
	"github.com/osse101/HatcheryOps_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.HatcheryCreated,
		event.ImageUploaded,
		event.ImageDeleted,
		event.ImageReviewed,
		event.CycleClosed,
		event.SeedsAssigned,
		event.PurchaseApproved,
		event.NotificationCreated,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics. Undecodable payloads are
// counted as published and otherwise ignored.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.ImageUploaded:
		var p event.ImagePayloadV1
		if p, err = event.DecodePayload[event.ImagePayloadV1](evt.Payload); err == nil {
			ImagesUploaded.WithLabelValues(strconv.Itoa(p.SlotIndex)).Inc()
		}

	case event.ImageDeleted:
		var p event.ImagePayloadV1
		if p, err = event.DecodePayload[event.ImagePayloadV1](evt.Payload); err == nil {
			ImagesDeleted.WithLabelValues(strconv.Itoa(p.SlotIndex)).Inc()
		}

	case event.ImageReviewed:
		var p event.ImagePayloadV1
		if p, err = event.DecodePayload[event.ImagePayloadV1](evt.Payload); err == nil {
			ImagesReviewed.WithLabelValues(p.Status).Inc()
		}

	case event.CycleClosed:
		var p event.CycleClosedPayloadV1
		if p, err = event.DecodePayload[event.CycleClosedPayloadV1](evt.Payload); err == nil {
			trigger := TriggerManual
			if p.Automatic {
				trigger = TriggerAutomatic
			}
			CyclesClosed.WithLabelValues(trigger).Inc()
		}

	case event.PurchaseApproved:
		var p event.PurchaseApprovedPayloadV1
		if p, err = event.DecodePayload[event.PurchaseApprovedPayloadV1](evt.Payload); err == nil {
			PurchasesApproved.Inc()
			if p.Total > 0 {
				PurchaseRevenue.Add(float64(p.Total))
			}
		}

	case event.NotificationCreated:
		var p event.NotificationCreatedPayloadV1
		if p, err = event.DecodePayload[event.NotificationCreatedPayloadV1](evt.Payload); err == nil {
			NotificationsSent.WithLabelValues(p.Kind).Inc()
		}
	}

	if err != nil {
		log.Debug(LogMsgEventPayloadInvalid, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

// RecordSlotRejection counts a refused upload or delete by its precondition
func RecordSlotRejection(err error) {
	if err == nil {
		return
	}
	SlotRejections.WithLabelValues(rejectionReason(err)).Inc()
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrSeedsNotAssigned):
		return ReasonSeedsNotAssigned
	case errors.Is(err, domain.ErrSlotLocked):
		return ReasonSlotLocked
	case errors.Is(err, domain.ErrHatcheryComplete):
		return ReasonHatcheryComplete
	case errors.Is(err, domain.ErrCycleClosed):
		return ReasonCycleClosed
	case errors.Is(err, domain.ErrDeleteWindowExpired):
		return ReasonDeleteWindowExpired
	default:
		return ReasonOther
	}
}
