package core

import "context"

// LaunchRequest asks for one run of the downstream test job.
type LaunchRequest struct {
	PlanID  string `json:"plan_id"`
	TestJob string `json:"test_job"`
	// Collector tags the run so its results can be correlated back to the plan.
	Collector int `json:"collector"`
	// Parameters are forwarded untouched to the downstream job.
	Parameters []string `json:"parameters,omitempty"`
	// FileParameters maps a file parameter name to the manifest bound to it.
	FileParameters map[string]string `json:"file_parameters,omitempty"`
}

// LaunchResult is reported back by a downstream test run.
type LaunchResult struct {
	PlanID    string      `json:"plan_id"`
	Collector int         `json:"collector"`
	Result    BuildResult `json:"result"`
}

// JobLauncher launches the downstream test job once per request and waits for the results.
type JobLauncher interface {
	Launch(ctx context.Context, reqs []*LaunchRequest) ([]*LaunchResult, error)
}
