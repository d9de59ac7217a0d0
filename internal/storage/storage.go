// Package storage persists JSON copies of sent reports. Keys are
// forward-slash paths derived from the report frequency and send time, so
// the archive stays browsable by year and month in both backends.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/minima-hotel/backoffice-api/internal/config"
	"github.com/minima-hotel/backoffice-api/internal/domain"
	"go.uber.org/zap"
)

// Archive stores and retrieves archived report documents by key.
type Archive interface {
	Put(ctx context.Context, key string, contentType string, data io.Reader) (int64, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// ArchiveKey builds the archive path for a sent report, for example
// "2026/06/weekly-2026-06-15T08-00-00.json".
func ArchiveKey(frequency domain.ReportFrequency, sentAt time.Time) string {
	sentAt = sentAt.UTC()
	return fmt.Sprintf("%04d/%02d/%s-%s.json",
		sentAt.Year(), int(sentAt.Month()), frequency, sentAt.Format("2006-01-02T15-04-05"))
}

// NewArchive creates the archive backend selected by configuration: the
// local filesystem for development, Azure Blob Storage for deployed
// environments.
func NewArchive(cfg *config.StorageConfig, logger *zap.Logger) (Archive, error) {
	switch cfg.Mode {
	case "local":
		return NewLocalArchive(cfg.LocalBasePath)
	case "cloud", "azure":
		if cfg.CloudConnectionString == "" {
			return nil, fmt.Errorf("cloud connection string required for azure archive")
		}
		return NewBlobArchive(cfg.CloudConnectionString, cfg.CloudContainer, logger)
	default:
		return nil, fmt.Errorf("unsupported storage mode: %s", cfg.Mode)
	}
}

// LocalArchive keeps the report archive on the local filesystem.
type LocalArchive struct {
	basePath string
}

// NewLocalArchive creates a local archive rooted at basePath.
func NewLocalArchive(basePath string) (*LocalArchive, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &LocalArchive{basePath: basePath}, nil
}

func (a *LocalArchive) path(key string) string {
	return filepath.Join(a.basePath, filepath.FromSlash(key))
}

// Put writes a report document under the given key, creating the year and
// month directories as needed.
func (a *LocalArchive) Put(ctx context.Context, key string, contentType string, data io.Reader) (int64, error) {
	fullPath := a.path(key)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create archive file: %w", err)
	}
	defer file.Close()

	size, err := io.Copy(file, data)
	if err != nil {
		os.Remove(fullPath) // Cleanup on error
		return 0, fmt.Errorf("failed to write archive file: %w", err)
	}

	return size, nil
}

// Get opens an archived report document.
func (a *LocalArchive) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	file, err := os.Open(a.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("archived report not found: %s", key)
		}
		return nil, fmt.Errorf("failed to open archive file: %w", err)
	}
	return file, nil
}

// Delete removes an archived report document. Deleting a missing key is
// not an error.
func (a *LocalArchive) Delete(ctx context.Context, key string) error {
	if err := os.Remove(a.path(key)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete archive file: %w", err)
	}
	return nil
}
