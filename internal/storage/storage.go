// Package storage persists uploaded hatchery images on the local disk or in an
// S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/osse101/HatcheryOps_Go/internal/config"
)

// Storage is the object store behind image uploads
type Storage interface {
	// Put stores body under key and returns its public URL
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// URL returns the public URL for key
	URL(key string) string
	// Health reports whether the backend is reachable
	Health(ctx context.Context) error
}

// New builds the backend selected by cfg.Backend
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Backend {
	case config.StorageBackendS3:
		return NewS3Storage(ctx, cfg)
	case config.StorageBackendLocal, "":
		return NewLocalStorage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
