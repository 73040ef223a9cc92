package core

import "context"

// ReportArchiver collects the test reports of the downstream runs into the build.
type ReportArchiver interface {
	// Tally aggregates the reports found in the workspace and archives them as the test
	// result of the build.
	Tally(ctx context.Context, buildID, workspace string) (TestResult, error)
}
