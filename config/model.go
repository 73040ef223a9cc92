package config

import (
	"time"

	"github.com/LambdaTest/knapsack/pkg/lumber"
)

type (
	// ConfigWrapper is a wrapper for the config
	ConfigWrapper struct {
		Config `json:"data"`
	}

	// Config the application's configuration
	Config struct {
		DB              DBConfig
		Azure           Azure
		Kafka           KafkaConfig
		Redis           Redis
		Tracing         TracingConfig
		Executor        ExecutorConfig
		Port            string
		LogFile         string
		LogConfig       lumber.LoggingConfig
		Env             string
		Verbose         bool
		Workspace       string
		GracefulTimeout time.Duration
		ShutDownDelay   time.Duration
		LaunchTimeout   time.Duration
	}

	// ExecutorConfig configures how a build is split and how the splits are launched.
	ExecutorConfig struct {
		// TestJob is the downstream job every split is launched on
		TestJob string
		// PatternFile is the file parameter receiving the exclude manifest
		PatternFile string
		// IncludesPatternFile is the file parameter receiving the include manifest.
		// Inclusions are generated only when it is set.
		IncludesPatternFile string
		// TestReportFiles glob of the reports collected from the splits
		TestReportFiles string
		// ArchiveTestResults stores the collected reports as the build's test result
		ArchiveTestResults bool
		// Parameters passed through to every split
		Parameters []string
		// ParallelismMode one of count, tests, time
		ParallelismMode string
		// ParallelismValue is the count, tests per split or minutes per split
		ParallelismValue int
		// AllowLineageFallback searches the primary lineage when the build's own has no report
		AllowLineageFallback bool
	}

	// TracingConfig provides opentelemetry configurations
	TracingConfig struct {
		// OtelEndpoint for storing host name for otel collector
		OtelEndpoint string
	}

	// DBConfig providers the mysql db configuration.
	DBConfig struct {
		Host     string `json:"host"`
		Port     string `json:"port"`
		User     string `json:"user"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}

	// Azure providers the storage configuration.
	Azure struct {
		// SplitsContainerName for mirroring the split manifests
		SplitsContainerName string
		// ReportsContainerName for storing the collected test reports
		ReportsContainerName string
		// StorageAccountName azure storage account name
		StorageAccountName string
		// StorageAccessKey azure storage access key
		StorageAccessKey string
	}

	// Redis represents the redis configuration.
	Redis struct {
		// Redis host:port address.
		Addr string
		// Redis username.
		Username string
		// Redis password.
		Password string
		// TLS enabled
		TLS bool
	}

	// KafkaConfig provides the kafka configuration.
	KafkaConfig struct {
		Brokers      string              `json:"brokers"`
		LaunchConfig KafkaProducerConfig `json:"launch_queue"`
		ResultConfig KafkaConsumerConfig `json:"result_queue"`
	}

	// KafkaProducerConfig provides the kafka producer configuration.
	KafkaProducerConfig struct {
		Topic string `json:"topic"`
	}

	// KafkaConsumerConfig provides the kafka configuration.
	KafkaConsumerConfig struct {
		Topic         string `json:"topic"`
		ConsumerGroup string `json:"consumer_group"`
	}
)
