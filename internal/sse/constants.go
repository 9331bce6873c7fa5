package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second
)

// Event types for SSE
const (
	// EventTypeConnected is the first event on every stream
	EventTypeConnected = "connected"

	// EventTypeNotification carries notices and stories
	EventTypeNotification = "notification"

	// EventTypeImageReviewed is sent to the owner when an admin reviews an image
	EventTypeImageReviewed = "hatchery.image_reviewed"

	// EventTypeCycleClosed is sent to the owner when a cycle closes
	EventTypeCycleClosed = "hatchery.cycle_closed"

	// EventTypeSeedsAssigned is sent when an admin changes the seller's seed count
	EventTypeSeedsAssigned = "profile.seeds_assigned"

	// EventTypePurchaseApproved is sent when a purchase is approved and invoiced
	EventTypePurchaseApproved = "purchase.approved"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgEventDropped       = "SSE event dropped, buffer full"
	LogMsgWriteError         = "Failed to write SSE event"
)
