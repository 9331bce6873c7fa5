package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/HatcheryOps_Go/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for all relevant event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.NotificationCreated, s.handleNotification)
	s.bus.Subscribe(event.ImageReviewed, s.handleImageReviewed)
	s.bus.Subscribe(event.CycleClosed, s.handleCycleClosed)
	s.bus.Subscribe(event.SeedsAssigned, s.handleSeedsAssigned)
	s.bus.Subscribe(event.PurchaseApproved, s.handlePurchaseApproved)

	slog.Info("SSE subscriber registered for event types",
		"types", []string{
			string(event.NotificationCreated),
			string(event.ImageReviewed),
			string(event.CycleClosed),
			string(event.SeedsAssigned),
			string(event.PurchaseApproved),
		})
}

func (s *Subscriber) handleNotification(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.NotificationCreatedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn("Invalid notification event payload", "error", err)
		return nil
	}

	msg := NotificationPayload{
		ID:        payload.NotificationID,
		Kind:      payload.Kind,
		Title:     payload.Title,
		Body:      payload.Body,
		ImageURL:  payload.ImageURL,
		CreatedAt: payload.CreatedAt,
	}
	if len(payload.UserIDs) == 0 {
		s.hub.Broadcast(EventTypeNotification, msg)
	} else {
		s.hub.SendTo(payload.UserIDs, EventTypeNotification, msg)
	}

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeNotification,
		"notification_id", msg.ID,
		"recipients", len(payload.UserIDs))
	return nil
}

func (s *Subscriber) handleImageReviewed(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.ImagePayloadV1](evt.Payload)
	if err != nil {
		slog.Warn("Invalid image reviewed event payload", "error", err)
		return nil
	}
	s.hub.SendTo([]string{payload.UserID}, EventTypeImageReviewed, ImageReviewedPayload{
		HatcheryID: payload.HatcheryID,
		SlotIndex:  payload.SlotIndex,
		Status:     payload.Status,
		Feedback:   payload.Feedback,
	})
	return nil
}

func (s *Subscriber) handleCycleClosed(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.CycleClosedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn("Invalid cycle closed event payload", "error", err)
		return nil
	}
	s.hub.SendTo([]string{payload.UserID}, EventTypeCycleClosed, CycleClosedPayload{
		HatcheryID: payload.HatcheryID,
		ClosedAt:   payload.ClosedAt,
	})
	return nil
}

func (s *Subscriber) handleSeedsAssigned(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.SeedsAssignedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn("Invalid seeds assigned event payload", "error", err)
		return nil
	}
	s.hub.SendTo([]string{payload.UserID}, EventTypeSeedsAssigned, SeedsAssignedPayload{SeedsCount: payload.SeedsCount})
	return nil
}

func (s *Subscriber) handlePurchaseApproved(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.PurchaseApprovedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn("Invalid purchase approved event payload", "error", err)
		return nil
	}
	s.hub.SendTo([]string{payload.UserID}, EventTypePurchaseApproved, PurchaseApprovedPayload{
		TransactionID: payload.TransactionID,
		InvoiceNumber: payload.InvoiceNumber,
		Total:         payload.Total,
	})
	return nil
}
