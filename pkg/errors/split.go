package errors

var (
	// ErrNoWorkspace is returned when the build has no workspace to write the split manifests to.
	ErrNoWorkspace = New("no workspace")
	// ErrInvalidParallelism is returned when the parallelism mode is not supported.
	ErrInvalidParallelism = New("invalid parallelism mode")
	// ErrTriggerAborted is returned when a downstream test job was aborted.
	ErrTriggerAborted = New("downstream test job aborted")
	// ErrLaunchTimeout is returned when the downstream test jobs did not report back in time.
	ErrLaunchTimeout = New("timed out waiting for downstream test jobs")
	// ErrNoTestReports is returned when no report file matched the report glob.
	ErrNoTestReports = New("no test report files were found")
	// ErrBuildNotFound is returned when the requested build does not exist.
	ErrBuildNotFound = New("build not found")
	// ErrUnknownTestResultKind is returned when a stored test result node has an unknown kind.
	ErrUnknownTestResultKind = New("unknown test result kind")
)
