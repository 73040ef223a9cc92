package core

import (
	"context"
	"time"

	"gopkg.in/guregu/null.v4/zero"
)

// BuildResult is the outcome of a build.
type BuildResult string

// Build results, ordered from best to worst as in Combine.
const (
	BuildSuccess  BuildResult = "SUCCESS"
	BuildUnstable BuildResult = "UNSTABLE"
	BuildFailure  BuildResult = "FAILURE"
	BuildNotBuilt BuildResult = "NOT_BUILT"
	BuildAborted  BuildResult = "ABORTED"
	// BuildRunning is stored while the build has no result yet.
	BuildRunning BuildResult = ""
)

func (r BuildResult) ordinal() int {
	switch r {
	case BuildSuccess:
		return 0
	case BuildUnstable:
		return 1
	case BuildFailure:
		return 2
	case BuildNotBuilt:
		return 3
	case BuildAborted:
		return 4
	default:
		return -1
	}
}

// Combine returns the worse of the two results.
func (r BuildResult) Combine(other BuildResult) BuildResult {
	if other.ordinal() > r.ordinal() {
		return other
	}
	return r
}

// IsWorseThan reports whether r is strictly worse than other.
func (r BuildResult) IsWorseThan(other BuildResult) bool {
	return r.ordinal() > other.ordinal()
}

// Build represents one execution of a job.
type Build struct {
	ID        string      `json:"id" db:"id"`
	JobID     string      `json:"job_id" db:"job_id"`
	Number    int         `json:"number" db:"number"`
	Result    BuildResult `json:"result" db:"result"`
	Workspace zero.String `json:"workspace,omitempty" db:"workspace"`
	Created   time.Time   `json:"created_at" db:"created_at"`
	Updated   time.Time   `json:"-" db:"updated_at"`
	EndTime   zero.Time   `json:"end_time" db:"end_time"`
}

// BuildStore defines datastore operation for working with builds.
type BuildStore interface {
	// Find returns the build with the given id.
	Find(ctx context.Context, buildID string) (*Build, error)
	// FindPrevious returns at most limit builds of the job numbered below the given number,
	// newest first.
	FindPrevious(ctx context.Context, jobID string, number, limit int) ([]*Build, error)
	// FindLatest returns at most limit builds of the job, newest first.
	FindLatest(ctx context.Context, jobID string, limit int) ([]*Build, error)
	// MarkStopped stores the final result of the build.
	MarkStopped(ctx context.Context, buildID string, result BuildResult) error
}
