package config

import "time"

// Logging and service defaults
const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultLogDir      = "logs"
	DefaultEnvironment = "dev"
	DefaultServiceName = "hatchery-ops"
	DefaultVersion     = "dev"
)

// Database defaults
const (
	DefaultDBName        = "hatchery"
	DefaultDBMaxConns    = 20
	DefaultDBMaxConnIdle = 5 * time.Minute
	DefaultDBMaxConnLife = time.Hour
)

// Auth defaults
const (
	DefaultTokenTTL = 30 * 24 * time.Hour
)

// Storage backends
const (
	StorageBackendLocal = "local"
	StorageBackendS3    = "s3"

	DefaultLocalStoragePath    = "data/media"
	DefaultLocalStorageBaseURL = "http://localhost:8080/media"
)

// Domain defaults
const (
	DefaultMaxUploadBytes    = 10 << 20
	DefaultProfileCacheSize  = 1000
	DefaultProfileCacheTTL   = 5 * time.Minute
	DefaultStoryTTL          = 24 * time.Hour
	DefaultHatcheryCycleDays = 30
	DefaultDeadLetterPath    = "logs/deadletter.jsonl"
)
