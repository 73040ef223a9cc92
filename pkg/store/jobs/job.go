package jobs

import (
	"context"

	"github.com/LambdaTest/knapsack/pkg/core"
	errs "github.com/LambdaTest/knapsack/pkg/errors"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	"github.com/jmoiron/sqlx"
)

type jobStore struct {
	db     core.DB
	logger lumber.Logger
}

// New returns a new JobStore
func New(db core.DB, logger lumber.Logger) core.JobStore {
	return &jobStore{db: db, logger: logger}
}

func (j *jobStore) Find(ctx context.Context, jobID string) (*core.JobRecord, error) {
	job := new(core.JobRecord)
	return job, j.db.Execute(func(db *sqlx.DB) error {
		row := db.QueryRowxContext(ctx, findByIDQuery, jobID)
		if err := row.StructScan(job); err != nil {
			return errs.SQLError(err)
		}
		return nil
	})
}

func (j *jobStore) FindByGroup(ctx context.Context, groupID string) ([]*core.JobRecord, error) {
	jobs := make([]*core.JobRecord, 0)
	return jobs, j.db.Execute(func(db *sqlx.DB) error {
		rows, err := db.QueryxContext(ctx, findByGroupQuery, groupID)
		if err != nil {
			return errs.SQLError(err)
		}
		defer rows.Close()
		for rows.Next() {
			job := new(core.JobRecord)
			if err := rows.StructScan(job); err != nil {
				return errs.SQLError(err)
			}
			jobs = append(jobs, job)
		}
		if len(jobs) == 0 {
			return errs.ErrRowsNotFound
		}
		return nil
	})
}

const selectColumns = `
SELECT
	j.id,
	j.name,
	j.group_id,
	COALESCE(g.multi_lineage, FALSE) AS multi_lineage,
	j.is_primary,
	j.created_at,
	j.updated_at
FROM
	job j
	LEFT JOIN job_group g ON g.id = j.group_id
`

const findByIDQuery = selectColumns + `
WHERE
	j.id = ?
`

const findByGroupQuery = selectColumns + `
WHERE
	j.group_id = ?
ORDER BY
	j.created_at
`
