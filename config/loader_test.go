package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/LambdaTest/knapsack/pkg/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCmd(t *testing.T) *cobra.Command {
	t.Helper()
	viper.Reset()
	cmd := &cobra.Command{Use: "knapsack"}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("workspace", "", "")
	cmd.Flags().String("port", "", "")
	return cmd
}

func TestLoadDefaults(t *testing.T) {
	cmd := newCmd(t)
	require.NoError(t, cmd.Flags().Set("config", filepath.Join(t.TempDir(), "missing.json")))

	cfg, err := Load(cmd)
	require.NoError(t, err)
	assert.Equal(t, "9876", cfg.Port)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "./", cfg.Workspace)
	assert.Equal(t, time.Duration(constants.DefaultLaunchTimeout), cfg.LaunchTimeout)
	assert.Equal(t, "count", cfg.Executor.ParallelismMode)
	assert.Equal(t, constants.DefaultParallelism, cfg.Executor.ParallelismValue)
	assert.True(t, cfg.Executor.AllowLineageFallback)
	assert.Equal(t, "./knapsack.log", cfg.LogConfig.FileLocation)
	assert.Same(t, cfg, GlobalConfig)
}

func TestLoadFileAndFlags(t *testing.T) {
	file := filepath.Join(t.TempDir(), "ks.json")
	content := `{"data": {
		"port": "8080",
		"executor": {"testJob": "unit-tests", "includesPatternFile": "INCLUDES_FILE", "parallelismMode": "time", "parallelismValue": 15},
		"kafka": {"brokers": "localhost:9092", "launch_queue": {"topic": "launch"}, "result_queue": {"topic": "results", "consumer_group": "ks"}}
	}}`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	cmd := newCmd(t)
	require.NoError(t, cmd.Flags().Set("config", file))
	require.NoError(t, cmd.Flags().Set("workspace", "/srv/ws"))

	cfg, err := Load(cmd)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/srv/ws", cfg.Workspace)
	assert.Equal(t, "unit-tests", cfg.Executor.TestJob)
	assert.Equal(t, "INCLUDES_FILE", cfg.Executor.IncludesPatternFile)
	assert.Equal(t, "EXCLUDES_FILE", cfg.Executor.PatternFile)
	assert.Equal(t, "time", cfg.Executor.ParallelismMode)
	assert.Equal(t, 15, cfg.Executor.ParallelismValue)
	assert.Equal(t, "launch", cfg.Kafka.LaunchConfig.Topic)
	assert.Equal(t, "ks", cfg.Kafka.ResultConfig.ConsumerGroup)
}
