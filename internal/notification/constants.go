package notification

import "time"

// Content limits
const (
	MaxTitleLength = 120
	MaxBodyLength  = 2000
	MaxRecipients  = 500
)

// DefaultListLimit caps a notification listing when the caller passes no limit
const DefaultListLimit = 50

// DefaultStoryTTL applies when the service is built with a zero TTL
const DefaultStoryTTL = 24 * time.Hour

// Log messages
const (
	LogMsgNotificationSent = "Notification sent"
	LogMsgStoriesPurged    = "Expired stories purged"
	LogMsgPublishFailed    = "Failed to publish notification event"
)
