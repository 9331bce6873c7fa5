package hatchery

// Lock key prefixes for the in-process lock manager
const (
	lockPrefixHatchery = "hatchery:"
	lockPrefixUser     = "user:"
)

// Log messages
const (
	LogMsgHatcheryCreated      = "Hatchery cycle created"
	LogMsgImageUploaded        = "Hatchery image uploaded"
	LogMsgImageDeleted         = "Hatchery image deleted"
	LogMsgImageReviewed        = "Hatchery image reviewed"
	LogMsgCycleClosed          = "Hatchery cycle closed"
	LogMsgUploadRefused        = "Hatchery upload refused"
	LogMsgDeleteRefused        = "Hatchery delete refused"
	LogMsgPublishFailed        = "Failed to publish hatchery event"
	LogMsgOrphanCleanupFailed  = "Failed to remove stored object after failed write"
	LogMsgObjectDeleteFailed   = "Failed to delete stored image object"
	LogMsgAutoCloseFailed      = "Failed to auto-close hatchery cycle"
	LogMsgExpiredCycleReplaced = "Expired active cycle closed before starting a new one"
)

// Cycle naming
const cycleNameLayout = "Jan 2006"
