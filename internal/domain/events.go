package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "hatchery.image_uploaded")
const (
	// EventTypeHatcheryCreated is published when a seller's cycle is created
	EventTypeHatcheryCreated = "hatchery.created"

	// EventTypeImageUploaded is published after an image is stored in a slot
	EventTypeImageUploaded = "hatchery.image_uploaded"

	// EventTypeImageDeleted is published after an image is removed from a slot
	EventTypeImageDeleted = "hatchery.image_deleted"

	// EventTypeImageReviewed is published when an admin approves or rejects an image
	EventTypeImageReviewed = "hatchery.image_reviewed"

	// EventTypeCycleClosed is published when a cycle stops accepting uploads
	EventTypeCycleClosed = "hatchery.cycle_closed"

	// EventTypeSeedsAssigned is published when an admin changes a seller's seed count
	EventTypeSeedsAssigned = "profile.seeds_assigned"

	// EventTypePurchaseApproved is published when an admin approves a transaction
	EventTypePurchaseApproved = "purchase.approved"

	// EventTypeNotificationCreated is published for every admin notification or story
	EventTypeNotificationCreated = "notification.created"
)
