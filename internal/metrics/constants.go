package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameImagesUploaded     = "hatchery_images_uploaded_total"
	MetricNameImagesDeleted      = "hatchery_images_deleted_total"
	MetricNameImagesReviewed     = "hatchery_images_reviewed_total"
	MetricNameCyclesClosed       = "hatchery_cycles_closed_total"
	MetricNameSlotRejections     = "hatchery_slot_rejections_total"
	MetricNamePurchasesApproved  = "purchases_approved_total"
	MetricNamePurchaseRevenue    = "purchase_revenue_total"
	MetricNameNotificationsSent  = "notifications_sent_total"
	MetricNameSSEClientsActive   = "sse_clients_active"
	MetricNameSlotUnlocksPending = "slot_unlock_timers_pending"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextImagesUploaded     = "Total number of hatchery images uploaded"
	HelpTextImagesDeleted      = "Total number of hatchery images deleted"
	HelpTextImagesReviewed     = "Total number of hatchery images reviewed by admins"
	HelpTextCyclesClosed       = "Total number of hatchery cycles closed"
	HelpTextSlotRejections     = "Total number of slot operations refused by a precondition"
	HelpTextPurchasesApproved  = "Total number of purchases approved"
	HelpTextPurchaseRevenue    = "Total value of approved purchases in rupees"
	HelpTextNotificationsSent  = "Total number of notifications and stories sent"
	HelpTextSSEClientsActive   = "Current number of connected SSE clients"
	HelpTextSlotUnlocksPending = "Current number of scheduled slot unlock notifications"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelSlot    = "slot"
	LabelReason  = "reason"
	LabelTrigger = "trigger"
	LabelKind    = "kind"
)

// Label values
const (
	TriggerManual    = "manual"
	TriggerAutomatic = "automatic"

	ReasonSeedsNotAssigned    = "seeds_not_assigned"
	ReasonSlotLocked          = "slot_locked"
	ReasonHatcheryComplete    = "hatchery_complete"
	ReasonCycleClosed         = "cycle_closed"
	ReasonDeleteWindowExpired = "delete_window_expired"
	ReasonOther               = "other"

	unmatchedRoute = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s. Uploads land in the upper buckets.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadInvalid = "Event payload could not be decoded"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
