package user

import "time"

// ============================================================================
// Cache Configuration
// ============================================================================

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// DefaultCacheSize is the default maximum number of cache entries
const DefaultCacheSize = 1000

// DefaultCacheTTL is the default time-to-live for cache entries
const DefaultCacheTTL = 5 * time.Minute

// ============================================================================
// Profile Limits
// ============================================================================

// MaxNameLength bounds display names
const MaxNameLength = 200

// MaxSeedsCount bounds a single seed assignment
const MaxSeedsCount = 1_000_000

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgProfileRegistered   = "Profile registered"
	LogMsgProfileUpdated      = "Profile updated"
	LogMsgSeedsAssigned       = "Seeds assigned"
	LogMsgPublishSeedsFailed  = "Failed to publish seeds assigned event"
	LogMsgProfileCacheHit     = "Profile cache hit"
	LogMsgProfileCacheInvalid = "Profile cache entry invalidated"
)
