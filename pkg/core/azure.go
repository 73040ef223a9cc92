package core

import (
	"context"
	"io"
)

// List of container names
const (
	SplitsContainer = iota
	ReportsContainer
)

// AzureBlob defines operation for working with azure store
type AzureBlob interface {
	// UploadBytes uploads a buffer in blocks to a block blob.
	UploadBytes(ctx context.Context, path string, rawBytes []byte, containerID int, mimeType string) (string, error)
	// UploadStream uploads the reader in blocks to a block blob.
	UploadStream(ctx context.Context, path string, reader io.Reader, containerID int, mimeType string) (string, error)
	// DownloadStream downloads the data from the blob return result in io.Reader
	DownloadStream(ctx context.Context, path string, containerID int) (io.ReadCloser, error)
}
