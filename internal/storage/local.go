package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/osse101/HatcheryOps_Go/internal/config"
	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

// LocalStorage keeps images on the filesystem and serves them under baseURL
type LocalStorage struct {
	basePath string
	baseURL  string
	log      *slog.Logger
}

// NewLocalStorage creates the base directory if needed
func NewLocalStorage(cfg config.StorageConfig) (*LocalStorage, error) {
	basePath := strings.TrimSpace(cfg.LocalPath)
	if basePath == "" {
		return nil, fmt.Errorf("%w: LOCAL_STORAGE_PATH is empty", domain.ErrStorageUnavailable)
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create local storage directory: %w", err)
	}

	s := &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(strings.TrimSpace(cfg.LocalBaseURL), "/"),
		log:      slog.Default().With("component", "local-storage"),
	}
	s.log.Info("Local storage initialized", "path", basePath, "base_url", s.baseURL)
	return s, nil
}

// Root returns the directory served by the media file server
func (l *LocalStorage) Root() string {
	return l.basePath
}

func (l *LocalStorage) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("%w: invalid key %q", domain.ErrInvalidInput, key)
	}
	return filepath.Join(l.basePath, clean), nil
}

// Put writes the object to disk
func (l *LocalStorage) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	fullPath, err := l.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	written, err := io.Copy(file, body)
	if err != nil {
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	l.log.Debug("Stored object", "key", key, "bytes", written, "content_type", contentType)
	return l.URL(key), nil
}

// Delete removes the object file
func (l *LocalStorage) Delete(ctx context.Context, key string) error {
	fullPath, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// URL returns baseURL/key
func (l *LocalStorage) URL(key string) string {
	return l.baseURL + "/" + filepath.ToSlash(key)
}

// Health checks that the directory is writable
func (l *LocalStorage) Health(ctx context.Context) error {
	testFile := filepath.Join(l.basePath, ".health_check")
	if err := os.WriteFile(testFile, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("storage directory not writable: %w", err)
	}
	_ = os.Remove(testFile)
	return nil
}
