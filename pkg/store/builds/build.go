package builds

import (
	"context"
	"time"

	"github.com/LambdaTest/knapsack/pkg/core"
	errs "github.com/LambdaTest/knapsack/pkg/errors"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4/zero"
)

const (
	maxRetries = 3
	delay      = 250 * time.Millisecond
	maxJitter  = 100 * time.Millisecond
	errMsg     = "failed to perform build transaction"
)

type buildStore struct {
	db     core.DB
	logger lumber.Logger
}

// New returns a new BuildStore
func New(db core.DB, logger lumber.Logger) core.BuildStore {
	return &buildStore{db: db, logger: logger}
}

func (b *buildStore) Find(ctx context.Context, buildID string) (*core.Build, error) {
	build := new(core.Build)
	return build, b.db.Execute(func(db *sqlx.DB) error {
		row := db.QueryRowxContext(ctx, findByIDQuery, buildID)
		if err := row.StructScan(build); err != nil {
			return errs.SQLError(err)
		}
		return nil
	})
}

func (b *buildStore) FindPrevious(ctx context.Context, jobID string, number, limit int) ([]*core.Build, error) {
	return b.list(ctx, findPreviousQuery, jobID, number, limit)
}

func (b *buildStore) FindLatest(ctx context.Context, jobID string, limit int) ([]*core.Build, error) {
	return b.list(ctx, findLatestQuery, jobID, limit)
}

func (b *buildStore) list(ctx context.Context, query string, args ...interface{}) ([]*core.Build, error) {
	builds := make([]*core.Build, 0)
	return builds, b.db.Execute(func(db *sqlx.DB) error {
		rows, err := db.QueryxContext(ctx, query, args...)
		if err != nil {
			return errs.SQLError(err)
		}
		defer rows.Close()
		for rows.Next() {
			build := new(core.Build)
			if err := rows.StructScan(build); err != nil {
				return errs.SQLError(err)
			}
			builds = append(builds, build)
		}
		return rows.Err()
	})
}

func (b *buildStore) MarkStopped(ctx context.Context, buildID string, result core.BuildResult) error {
	build := stoppedBuild(buildID, result, time.Now())
	return b.db.ExecuteTransactionWithRetry(ctx, maxRetries, delay, maxJitter, errMsg, func(tx *sqlx.Tx) error {
		res, err := tx.NamedExecContext(ctx, markStoppedQuery, build)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			b.logger.Warnf("no build found to mark stopped for buildID %s", buildID)
			return errs.ErrRowsNotFound
		}
		return nil
	})
}

func stoppedBuild(buildID string, result core.BuildResult, now time.Time) *core.Build {
	return &core.Build{
		ID:      buildID,
		Result:  result,
		EndTime: zero.TimeFrom(now),
		Updated: now,
	}
}

const selectColumns = `
SELECT
	b.id,
	b.job_id,
	b.number,
	b.result,
	b.workspace,
	b.created_at,
	b.updated_at,
	b.end_time
FROM
	build b
`

const findByIDQuery = selectColumns + `
WHERE
	b.id = ?
`

const findPreviousQuery = selectColumns + `
WHERE
	b.job_id = ?
	AND b.number < ?
ORDER BY
	b.number DESC
LIMIT ?
`

const findLatestQuery = selectColumns + `
WHERE
	b.job_id = ?
ORDER BY
	b.number DESC
LIMIT ?
`

const markStoppedQuery = `
UPDATE
	build
SET
	result = :result,
	end_time = :end_time,
	updated_at = :updated_at
WHERE
	id = :id
`
