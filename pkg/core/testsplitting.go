package core

// TestSplitter splits the tests of the reference build into balanced sets.
type TestSplitter interface {
	// FindTestSplits returns the selector of every split for the run. With
	// generateInclusions every split but the first is expressed as an include list.
	FindTestSplits(run Run, generateInclusions bool) []*InclusionExclusionPattern
}

// HistoryResolver finds the durations recorded by the reference build of a run.
type HistoryResolver interface {
	// ResolvePreviousDurations returns the test classes of the reference build keyed by
	// name, nil when no usable build was found.
	ResolvePreviousDurations(run Run) map[string]*TestClass
}
