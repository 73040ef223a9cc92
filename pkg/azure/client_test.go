package azure

import (
	"context"
	"testing"

	"github.com/LambdaTest/knapsack/config"
	"github.com/LambdaTest/knapsack/pkg/core"
	errs "github.com/LambdaTest/knapsack/pkg/errors"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAzureBlobEnvMissingConfig(t *testing.T) {
	cfg := &config.Config{Azure: config.Azure{StorageAccountName: "acct", StorageAccessKey: "a2V5"}}
	_, err := NewAzureBlobEnv(cfg, lumber.NewTestLogger())
	assert.Equal(t, errs.ErrAzureConfig, err)
}

func TestGetContainerName(t *testing.T) {
	cfg := &config.Config{Azure: config.Azure{
		StorageAccountName:   "acct",
		StorageAccessKey:     "a2V5",
		SplitsContainerName:  "splits",
		ReportsContainerName: "reports",
	}}
	blob, err := NewAzureBlobEnv(cfg, lumber.NewTestLogger())
	require.NoError(t, err)
	s := blob.(*store)

	name, err := s.getContainerName(core.SplitsContainer)
	assert.NoError(t, err)
	assert.Equal(t, "splits", name)
	name, err = s.getContainerName(core.ReportsContainer)
	assert.NoError(t, err)
	assert.Equal(t, "reports", name)

	_, err = s.UploadBytes(context.Background(), "p/f", nil, 42, "text/plain")
	assert.Equal(t, errs.ErrUnknownContainer, err)
}
