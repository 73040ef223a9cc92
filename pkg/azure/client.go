package azure

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/Azure/azure-storage-blob-go/azblob"
	"github.com/LambdaTest/knapsack/config"
	"github.com/LambdaTest/knapsack/pkg/core"
	errs "github.com/LambdaTest/knapsack/pkg/errors"
	"github.com/LambdaTest/knapsack/pkg/lumber"
)

// store represents the azure storage
type store struct {
	splitsContainerName  string
	reportsContainerName string
	logger               lumber.Logger
	service              azblob.ServiceURL
}

const (
	defaultBufferSize  = 4 * 1024 * 1024
	defaultParallelism = 16
	defaultMaxBuffers  = 4
	maxRetryRequests   = 5
)

// NewAzureBlobEnv returns a new Azure blob store.
func NewAzureBlobEnv(cfg *config.Config, logger lumber.Logger) (core.AzureBlob, error) {
	if cfg.Azure.StorageAccountName == "" ||
		cfg.Azure.StorageAccessKey == "" ||
		cfg.Azure.SplitsContainerName == "" ||
		cfg.Azure.ReportsContainerName == "" {
		return nil, errs.ErrAzureConfig
	}
	// Create a default request pipeline using your storage account name and account key.
	credential, err := azblob.NewSharedKeyCredential(cfg.Azure.StorageAccountName, cfg.Azure.StorageAccessKey)
	if err != nil {
		logger.Errorf("Invalid azure credentials, error: %v", err)
		return nil, err
	}
	u, _ := url.Parse(fmt.Sprintf("https://%s.blob.core.windows.net", cfg.Azure.StorageAccountName))
	pipe := azblob.NewPipeline(credential, azblob.PipelineOptions{})

	return &store{
		splitsContainerName:  cfg.Azure.SplitsContainerName,
		reportsContainerName: cfg.Azure.ReportsContainerName,
		service:              azblob.NewServiceURL(*u, pipe),
		logger:               logger,
	}, nil
}

func (s *store) UploadStream(ctx context.Context, blobPath string, reader io.Reader, containerID int, mimeType string) (string, error) {
	blobURL, err := s.blobURL(blobPath, containerID)
	if err != nil {
		return "", err
	}
	s.logger.Debugf("uploading stream to blob %s", blobURL.String())
	_, err = azblob.UploadStreamToBlockBlob(ctx, reader, blobURL, azblob.UploadStreamToBlockBlobOptions{
		BlobHTTPHeaders: azblob.BlobHTTPHeaders{ContentType: mimeType},
		BufferSize:      defaultBufferSize,
		MaxBuffers:      defaultMaxBuffers,
	})

	return blobURL.String(), err
}

func (s *store) DownloadStream(ctx context.Context, blobPath string, containerID int) (io.ReadCloser, error) {
	blobURL, err := s.blobURL(blobPath, containerID)
	if err != nil {
		return nil, err
	}
	out, err := blobURL.Download(ctx, 0, azblob.CountToEnd, azblob.BlobAccessConditions{}, false, azblob.ClientProvidedKeyOptions{})
	if err != nil {
		return nil, errs.AzureError(err)
	}
	return out.Body(azblob.RetryReaderOptions{MaxRetryRequests: maxRetryRequests}), nil
}

func (s *store) UploadBytes(ctx context.Context, blobPath string, rawBytes []byte, containerID int, mimeType string) (string, error) {
	blobURL, err := s.blobURL(blobPath, containerID)
	if err != nil {
		return "", err
	}
	s.logger.Debugf("uploading bytes to blob %s", blobURL.String())
	_, err = azblob.UploadBufferToBlockBlob(ctx, rawBytes, blobURL, azblob.UploadToBlockBlobOptions{
		BlobHTTPHeaders: azblob.BlobHTTPHeaders{ContentType: mimeType},
		BlockSize:       defaultBufferSize,
		Parallelism:     defaultParallelism,
	})

	return blobURL.String(), err
}

func (s *store) blobURL(blobPath string, containerID int) (azblob.BlockBlobURL, error) {
	containerName, err := s.getContainerName(containerID)
	if err != nil {
		s.logger.Errorf("failed to find container for id %d, error %v", containerID, err)
		return azblob.BlockBlobURL{}, err
	}
	return s.service.NewContainerURL(containerName).NewBlockBlobURL(blobPath), nil
}

func (s *store) getContainerName(containerID int) (string, error) {
	switch containerID {
	case core.SplitsContainer:
		return s.splitsContainerName, nil
	case core.ReportsContainer:
		return s.reportsContainerName, nil
	default:
		return "", errs.ErrUnknownContainer
	}
}
