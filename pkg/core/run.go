package core

// Run is a read-only handle on a build and its predecessors.
type Run interface {
	// Number is the build number within its job.
	Number() int
	// Result is the outcome of the run.
	Result() BuildResult
	// Previous returns the preceding run of the same job, nil for the first one.
	Previous() Run
	// TestResult returns the archived test report, nil if the run has none.
	TestResult() TestResult
	// Job returns the job the run belongs to.
	Job() Job
}

// Job is a lineage of runs.
type Job interface {
	Name() string
	// IsPrimary reports whether the job is the primary lineage of its group.
	IsPrimary() bool
	// LastRun returns the latest run of the job, nil if it never ran.
	LastRun() Run
	// Parent returns the grouping of the job, nil for standalone jobs.
	Parent() JobGroup
}

// JobGroup is a grouping of related jobs.
type JobGroup interface {
	Jobs() []Job
	// MultiLineage reports whether the group holds one job per branch.
	MultiLineage() bool
}

// LineagePolicy decides which lineage is searched once the run's own lineage had no
// usable history.
type LineagePolicy interface {
	// FallbackStart returns the run the fallback search starts from, nil when there is no
	// fallback lineage for the job.
	FallbackStart(job Job) Run
}
