package core

import (
	"context"
	"time"
)

// TestReport is the archived test result of a build.
type TestReport struct {
	ID      string    `db:"id"`
	BuildID string    `db:"build_id"`
	Payload []byte    `db:"payload"`
	Created time.Time `db:"created_at"`
}

// TestReportStore defines datastore operation for working with archived test reports.
type TestReportStore interface {
	// Find returns the test result of the build, errs.ErrRowsNotFound if it has none.
	Find(ctx context.Context, buildID string) (TestResult, error)
	// Create stores the test result of the build, replacing an existing one.
	Create(ctx context.Context, buildID string, tr TestResult) error
}
