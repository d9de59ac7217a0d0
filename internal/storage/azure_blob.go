package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"go.uber.org/zap"
)

// BlobArchive keeps the report archive in an Azure Blob Storage container.
// Archive keys map directly to blob names, so the container lists by year
// and month prefix.
type BlobArchive struct {
	client    *azblob.Client
	container string
	logger    *zap.Logger
}

// NewBlobArchive connects to the archive container, creating it on first
// use.
func NewBlobArchive(connectionString, container string, logger *zap.Logger) (*BlobArchive, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	_, err = client.CreateContainer(context.Background(), container, nil)
	if err != nil && !strings.Contains(err.Error(), "ContainerAlreadyExists") {
		return nil, fmt.Errorf("failed to create archive container: %w", err)
	}

	logger.Info("Report archive container ready",
		zap.String("container", container),
	)

	return &BlobArchive{
		client:    client,
		container: container,
		logger:    logger,
	}, nil
}

// Put uploads a report document under the given key.
func (a *BlobArchive) Put(ctx context.Context, key string, contentType string, data io.Reader) (int64, error) {
	opts := &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: &contentType,
		},
	}

	reader := &countingReader{r: data}

	if _, err := a.client.UploadStream(ctx, a.container, key, reader, opts); err != nil {
		return 0, fmt.Errorf("failed to upload archive blob: %w", err)
	}

	a.logger.Info("Report archived",
		zap.String("key", key),
		zap.String("container", a.container),
		zap.Int64("size", reader.count),
	)

	return reader.count, nil
}

// countingReader wraps an io.Reader and counts the number of bytes read
type countingReader struct {
	r     io.Reader
	count int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.count += int64(n)
	return n, err
}

// Get downloads an archived report document.
func (a *BlobArchive) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	resp, err := a.client.DownloadStream(ctx, a.container, key, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download archive blob: %w", err)
	}
	return resp.Body, nil
}

// Delete removes an archived report document. A missing blob is not an
// error.
func (a *BlobArchive) Delete(ctx context.Context, key string) error {
	_, err := a.client.DeleteBlob(ctx, a.container, key, nil)
	if err != nil {
		if strings.Contains(err.Error(), "BlobNotFound") {
			return nil
		}
		return fmt.Errorf("failed to delete archive blob: %w", err)
	}

	a.logger.Info("Archived report deleted",
		zap.String("key", key),
		zap.String("container", a.container),
	)

	return nil
}
