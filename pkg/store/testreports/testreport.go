package testreports

import (
	"context"
	"errors"
	"time"

	"github.com/LambdaTest/knapsack/pkg/constants"
	"github.com/LambdaTest/knapsack/pkg/core"
	errs "github.com/LambdaTest/knapsack/pkg/errors"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	"github.com/LambdaTest/knapsack/pkg/utils"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
)

const (
	maxRetries = 3
	delay      = 250 * time.Millisecond
	maxJitter  = 100 * time.Millisecond
	errMsg     = "failed to perform test report transaction"
)

type testReportStore struct {
	db      core.DB
	redisDB core.RedisDB
	logger  lumber.Logger
}

// New returns a new TestReportStore. Reports are cached in redis when redisDB is not nil.
func New(db core.DB, redisDB core.RedisDB, logger lumber.Logger) core.TestReportStore {
	return &testReportStore{db: db, redisDB: redisDB, logger: logger}
}

func (t *testReportStore) Find(ctx context.Context, buildID string) (core.TestResult, error) {
	if tr := t.fromCache(ctx, buildID); tr != nil {
		return tr, nil
	}
	var payload []byte
	if err := t.db.Execute(func(db *sqlx.DB) error {
		row := db.QueryRowxContext(ctx, findByBuildIDQuery, buildID)
		if err := row.Scan(&payload); err != nil {
			return errs.SQLError(err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	tr, err := core.UnmarshalTestResult(payload)
	if err != nil {
		t.logger.Errorf("failed to decode test report of buildID %s, error: %v", buildID, err)
		return nil, err
	}
	t.toCache(ctx, buildID, payload)
	return tr, nil
}

func (t *testReportStore) Create(ctx context.Context, buildID string, tr core.TestResult) error {
	payload, err := core.MarshalTestResult(tr)
	if err != nil {
		return err
	}
	report := &core.TestReport{
		ID:      utils.GenerateUUID(),
		BuildID: buildID,
		Payload: payload,
		Created: time.Now(),
	}
	if err := t.db.ExecuteTransactionWithRetry(ctx, maxRetries, delay, maxJitter, errMsg, func(tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx, upsertQuery, report)
		return err
	}); err != nil {
		t.logger.Errorf("failed to store test report of buildID %s, error: %v", buildID, err)
		return err
	}
	t.toCache(ctx, buildID, payload)
	return nil
}

func (t *testReportStore) fromCache(ctx context.Context, buildID string) core.TestResult {
	if t.redisDB == nil {
		return nil
	}
	raw, err := t.redisDB.Client().Get(ctx, utils.GetReportCacheKey(buildID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			t.logger.Errorf("failed to read cached test report of buildID %s, error: %v", buildID, err)
		}
		return nil
	}
	tr, err := core.UnmarshalTestResult(raw)
	if err != nil {
		t.logger.Errorf("dropping undecodable cached test report of buildID %s, error: %v", buildID, err)
		return nil
	}
	return tr
}

func (t *testReportStore) toCache(ctx context.Context, buildID string, payload []byte) {
	if t.redisDB == nil {
		return
	}
	if err := t.redisDB.Client().Set(ctx, utils.GetReportCacheKey(buildID), payload, constants.ReportCacheTTL).Err(); err != nil {
		t.logger.Errorf("failed to cache test report of buildID %s, error: %v", buildID, err)
	}
}

const findByBuildIDQuery = `
SELECT
	r.payload
FROM
	test_report r
WHERE
	r.build_id = ?
`

const upsertQuery = `INSERT INTO test_report(id, build_id, payload, created_at)
VALUES (:id, :build_id, :payload, :created_at)
ON DUPLICATE KEY UPDATE payload=VALUES(payload), updated_at=NOW()`
