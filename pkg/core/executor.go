package core

import "context"

// RunLoader materializes the run graph of a build.
type RunLoader interface {
	Load(ctx context.Context, buildID string) (Run, *Build, error)
}

// Executor runs the parallel test execution step of a build.
type Executor interface {
	// Perform splits the tests, launches the downstream runs, and tallies their reports.
	Perform(ctx context.Context, buildID string) (BuildResult, error)
	// Plan only computes the splits of the build.
	Plan(ctx context.Context, buildID string, generateInclusions bool) ([]*InclusionExclusionPattern, error)
}
