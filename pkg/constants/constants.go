package constants

import (
	"time"
)

const (
	// ServiceName OpenTelemetry service name
	ServiceName = "knapsack"
	// NumberOfBuildsToSearch limits how many builds of one lineage are searched for a
	// reference test result.
	NumberOfBuildsToSearch = 20
	// SplitsDir is the workspace directory the split manifests are written to.
	SplitsDir = "test-splits"
	// ReportsGlob matches the test reports collected from the downstream runs.
	ReportsGlob = SplitsDir + "/reports/**/*.xml"
	// JavaSourceExt is the extension of the source form of a test class.
	JavaSourceExt = ".java"
	// JavaClassExt is the extension of the compiled form of a test class.
	JavaClassExt = ".class"
	// ManifestMIMEType is the content type of the uploaded manifests.
	ManifestMIMEType = "text/plain; charset=utf-8"
	// MysqlMaxIdleConnection max mysql idle connections.
	MysqlMaxIdleConnection = 25
	// MysqlMaxOpenConnection max mysql open connections.
	MysqlMaxOpenConnection = 25
	// MysqlMaxConnectionLifetime max mysql connection lifetime.
	MysqlMaxConnectionLifetime = 5 * time.Minute
	// ReportCachePrefix is the prefix of the redis keys caching archived test reports.
	ReportCachePrefix = "report:"
	// ReportCacheTTL is how long an archived test report stays in redis.
	ReportCacheTTL = 6 * time.Hour
	// DefaultShutDownDelay is the delay for graceful shutdown of the http server
	DefaultShutDownDelay = 5e9 // 5 seconds, value is int64 nanoseconds due to issue in viper.
	// DefaultGracefulTimeout is default timeout for graceful shutdown of the app.
	DefaultGracefulTimeout = 5 * 6e10 // 5 minutes
	// DefaultLaunchTimeout is how long the launcher waits for the downstream runs.
	DefaultLaunchTimeout = 4 * 36e11 // 4 hours
	// DefaultParallelism is the default number of splits.
	DefaultParallelism = 4
)

// All possible env values
const (
	Dev   = "dev"
	Prod  = "prod"
	Stage = "stage"
)

// BinaryVersion version of the knapsack binary, set at build time.
var BinaryVersion = "dev"

// CorsAllowedOrigins list of allowed origins
var CorsAllowedOrigins = []string{"http://localhost:3000"}
