package handler

// Generic HTTP error messages for client responses.
// These never carry internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgUnauthorized          = "Authentication required"

	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidSlotIndex  = "Slot index must be between 0 and 3"
	ErrMsgInvalidLimit      = "Invalid limit parameter"
	ErrMsgInvalidCoordinate = "Latitude and longitude must be numbers and sent together"
	ErrMsgMissingImageFile  = "An image file is required in the images field"
	ErrMsgInvalidMultipart  = "Invalid multipart upload"
	ErrMsgInvalidFormat     = "Format must be html or json"

	ErrMsgEventTypeRequired = "Event type is required"
	ErrMsgInvalidPayload    = "Invalid payload JSON"

	ErrMsgRenderInvoiceFailed = "Failed to render invoice"
	ErrMsgGatherMetricsFailed = "Failed to gather metrics"
	ErrMsgHealthStorage       = "image storage unavailable"
	ErrMsgHealthDatabase      = "database connection failed"
)

// Success messages for API responses
const (
	MsgNotificationRead     = "Notification marked as read"
	MsgEventBroadcast       = "Event broadcasted successfully"
	MsgImageDeleted         = "Image deleted"
	MsgImageUploaded        = "Image uploaded"
	MsgHatcheryCreated      = "Hatchery created"
	MsgHatcheryExists       = "Hatchery already exists"
	MsgProfileRegistered    = "Profile registered"
	MsgSeedsAssigned        = "Seeds assigned"
	MsgCycleClosed          = "Cycle closed"
	MsgPurchaseRecorded     = "Purchase recorded"
	MsgPurchaseApproved     = "Purchase approved"
	MsgNotificationsCreated = "Notification sent"
)

// Log messages
const (
	LogMsgIdentityMissing = "Handler reached without identity"
	LogMsgInvoiceRender   = "Failed to render invoice"
	LogMsgReadinessFailed = "Readiness check failed"
)
