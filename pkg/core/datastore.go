package core

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
)

// DB is the build history database the stores query.
type DB interface {
	Close() error

	// ExecuteTransactionWithRetry runs fn in a transaction that is retried up to maxRetries
	// times when it deadlocks or times out waiting for a lock. errorMsg prefixes every retry log.
	ExecuteTransactionWithRetry(
		ctx context.Context,
		maxRetries uint,
		delay,
		maxJitter time.Duration,
		errorMsg string,
		fn func(tx *sqlx.Tx) error) (err error)

	// Execute runs read-only queries outside of a transaction.
	Execute(fn func(conn *sqlx.DB) error) error
}

// RedisDB is the cache in front of the archived test reports.
type RedisDB interface {
	Client() redis.UniversalClient
}
