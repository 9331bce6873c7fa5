package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	handled := false

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		assert.Equal(t, eventType, event.Type)
		assert.Equal(t, "payload", event.Payload)
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType, Payload: "payload"})

	require.NoError(t, err)
	assert.True(t, handled, "Handler was not called")
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	count := 0

	handler := func(ctx context.Context, event Event) error {
		count++
		return nil
	}
	bus.Subscribe(eventType, handler)
	bus.Subscribe(eventType, handler)

	require.NoError(t, bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType}))
	assert.Equal(t, 2, count)
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		return errors.New("handler error")
	})

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType})
	assert.Error(t, err)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	assert.NoError(t, NewMemoryBus().Publish(context.Background(), Event{Type: "nobody"}))
}

func TestConstructors(t *testing.T) {
	uploaded := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	h := &domain.Hatchery{
		ID:     "h1",
		UserID: domain.NewUserID(),
		Images: []domain.HatcheryImage{{URL: "u", UploadedAt: uploaded, Status: domain.ImageStatusRejected, AdminFeedback: "blurry"}},
	}

	up := NewImageUploadedEvent(h, 0)
	assert.Equal(t, ImageUploaded, up.Type)
	payload, err := DecodePayload[ImagePayloadV1](up.Payload)
	require.NoError(t, err)
	assert.Equal(t, uploaded, payload.UploadedAt)
	assert.Equal(t, h.UserID.String(), payload.UserID)

	reviewed, err := DecodePayload[ImagePayloadV1](NewImageReviewedEvent(h, 0).Payload)
	require.NoError(t, err)
	assert.Equal(t, "blurry", reviewed.Feedback)

	n := &domain.Notification{ID: "n1", Kind: domain.NotificationKindStory, Title: "t"}
	broadcast, err := DecodePayload[NotificationCreatedPayloadV1](NewNotificationCreatedEvent(n, nil).Payload)
	require.NoError(t, err)
	assert.Empty(t, broadcast.UserIDs)
}

func TestDecodePayload_JSONFallback(t *testing.T) {
	raw := map[string]interface{}{"user_id": "u1", "seeds_count": 12}
	got, err := DecodePayload[SeedsAssignedPayloadV1](raw)
	require.NoError(t, err)
	assert.Equal(t, SeedsAssignedPayloadV1{UserID: "u1", SeedsCount: 12}, got)
}
