package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Event types published on the bus
const (
	HatcheryCreated     Type = domain.EventTypeHatcheryCreated
	ImageUploaded       Type = domain.EventTypeImageUploaded
	ImageDeleted        Type = domain.EventTypeImageDeleted
	ImageReviewed       Type = domain.EventTypeImageReviewed
	CycleClosed         Type = domain.EventTypeCycleClosed
	SeedsAssigned       Type = domain.EventTypeSeedsAssigned
	PurchaseApproved    Type = domain.EventTypePurchaseApproved
	NotificationCreated Type = domain.EventTypeNotificationCreated
)

// Typed event payloads for type safety

// HatcheryCreatedPayloadV1 is published when a seller's cycle starts
type HatcheryCreatedPayloadV1 struct {
	HatcheryID string    `json:"hatchery_id"`
	UserID     string    `json:"user_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

// ImagePayloadV1 is shared by the upload, delete and review events
type ImagePayloadV1 struct {
	HatcheryID string    `json:"hatchery_id"`
	UserID     string    `json:"user_id"`
	SlotIndex  int       `json:"slot_index"`
	URL        string    `json:"url,omitempty"`
	UploadedAt time.Time `json:"uploaded_at,omitempty"`
	Status     string    `json:"status,omitempty"`
	Feedback   string    `json:"feedback,omitempty"`
}

// CycleClosedPayloadV1 is published when a cycle stops accepting uploads
type CycleClosedPayloadV1 struct {
	HatcheryID string    `json:"hatchery_id"`
	UserID     string    `json:"user_id"`
	ClosedAt   time.Time `json:"closed_at"`
	Automatic  bool      `json:"automatic"`
}

// SeedsAssignedPayloadV1 is published when an admin changes a seed count
type SeedsAssignedPayloadV1 struct {
	UserID     string `json:"user_id"`
	SeedsCount int    `json:"seeds_count"`
}

// PurchaseApprovedPayloadV1 is published when a transaction is approved
type PurchaseApprovedPayloadV1 struct {
	TransactionID string `json:"transaction_id"`
	UserID        string `json:"user_id"`
	InvoiceNumber string `json:"invoice_number"`
	Total         int64  `json:"total"`
}

// NotificationCreatedPayloadV1 carries a notification to live streams.
// An empty UserIDs list means every connected user.
type NotificationCreatedPayloadV1 struct {
	NotificationID string    `json:"notification_id"`
	UserIDs        []string  `json:"user_ids,omitempty"`
	Kind           string    `json:"kind"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	ImageURL       string    `json:"image_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Type-safe event constructors

// NewHatcheryCreatedEvent creates a hatchery created event
func NewHatcheryCreatedEvent(h *domain.Hatchery) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    HatcheryCreated,
		Payload: HatcheryCreatedPayloadV1{
			HatcheryID: h.ID,
			UserID:     h.UserID.String(),
			StartDate:  h.StartDate,
			EndDate:    h.EndDate,
		},
	}
}

// NewImageUploadedEvent creates an image uploaded event
func NewImageUploadedEvent(h *domain.Hatchery, index int) Event {
	img := h.Images[index]
	return Event{
		Version: EventSchemaVersion,
		Type:    ImageUploaded,
		Payload: ImagePayloadV1{
			HatcheryID: h.ID,
			UserID:     h.UserID.String(),
			SlotIndex:  index,
			URL:        img.URL,
			UploadedAt: img.UploadedAt,
		},
	}
}

// NewImageDeletedEvent creates an image deleted event
func NewImageDeletedEvent(h *domain.Hatchery, index int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ImageDeleted,
		Payload: ImagePayloadV1{
			HatcheryID: h.ID,
			UserID:     h.UserID.String(),
			SlotIndex:  index,
		},
	}
}

// NewImageReviewedEvent creates an image reviewed event
func NewImageReviewedEvent(h *domain.Hatchery, index int) Event {
	img := h.Images[index]
	return Event{
		Version: EventSchemaVersion,
		Type:    ImageReviewed,
		Payload: ImagePayloadV1{
			HatcheryID: h.ID,
			UserID:     h.UserID.String(),
			SlotIndex:  index,
			URL:        img.URL,
			Status:     img.Status,
			Feedback:   img.AdminFeedback,
		},
	}
}

// NewCycleClosedEvent creates a cycle closed event
func NewCycleClosedEvent(h *domain.Hatchery, closedAt time.Time, automatic bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CycleClosed,
		Payload: CycleClosedPayloadV1{
			HatcheryID: h.ID,
			UserID:     h.UserID.String(),
			ClosedAt:   closedAt,
			Automatic:  automatic,
		},
	}
}

// NewSeedsAssignedEvent creates a seeds assigned event
func NewSeedsAssignedEvent(userID domain.UserID, seeds int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SeedsAssigned,
		Payload: SeedsAssignedPayloadV1{UserID: userID.String(), SeedsCount: seeds},
	}
}

// NewPurchaseApprovedEvent creates a purchase approved event
func NewPurchaseApprovedEvent(tx *domain.Transaction, invoiceNumber string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PurchaseApproved,
		Payload: PurchaseApprovedPayloadV1{
			TransactionID: tx.ID,
			UserID:        tx.UserID.String(),
			InvoiceNumber: invoiceNumber,
			Total:         tx.Total,
		},
	}
}

// NewNotificationCreatedEvent creates a notification event addressed to recipients
func NewNotificationCreatedEvent(n *domain.Notification, recipients []domain.UserID) Event {
	ids := make([]string, 0, len(recipients))
	for _, r := range recipients {
		ids = append(ids, r.String())
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    NotificationCreated,
		Payload: NotificationCreatedPayloadV1{
			NotificationID: n.ID,
			UserIDs:        ids,
			Kind:           n.Kind,
			Title:          n.Title,
			Body:           n.Body,
			ImageURL:       n.ImageURL,
			CreatedAt:      n.CreatedAt,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
