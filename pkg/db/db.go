package db

import (
	"context"
	"time"

	errs "github.com/LambdaTest/knapsack/pkg/errors"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	"github.com/avast/retry-go/v4"
	"github.com/jmoiron/sqlx"
)

// DB is a pool of zero or more underlying connections to
// the build history database.
type DB struct {
	conn   *sqlx.DB
	logger lumber.Logger
}

// Execute runs fn against the pool and returns its error.
func (db *DB) Execute(fn func(conn *sqlx.DB) error) error {
	return fn(db.conn)
}

// ExecuteTransactionWithRetry runs fn in a transaction, retrying the whole transaction on
// deadlocks and lock wait timeouts.
func (db *DB) ExecuteTransactionWithRetry(
	ctx context.Context,
	maxRetries uint,
	delay,
	maxJitter time.Duration,
	errorMsg string,
	fn func(tx *sqlx.Tx) error) (err error) {
	return retry.Do(func() error {
		return db.executeTransaction(ctx, fn)
	}, retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.Attempts(maxRetries),
		retry.Delay(delay),
		retry.MaxJitter(maxJitter),
		retry.RetryIf(errs.IsTransient),
		retry.OnRetry(func(n uint, err error) {
			db.logger.Errorf("%s, retry %d, error: %+v", errorMsg, n, err)
		}),
	)
}

// executeTransaction runs fn in a read-write transaction, committing when fn succeeds and
// rolling back otherwise. A cancelled ctx rolls the transaction back on its own.
func (db *DB) executeTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			db.rollback(tx)
			db.logger.Errorf("panic while executing query: %+v", p)
			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if ctx.Err() == nil {
			db.rollback(tx)
		}
		return err
	}
	return tx.Commit()
}

func (db *DB) rollback(tx *sqlx.Tx) {
	if err := tx.Rollback(); err != nil {
		db.logger.Errorf("error while performing rollback, %v", err)
	}
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
