// Package history locates the build whose test report is used as the duration source of a
// test split.
package history

import (
	"github.com/LambdaTest/knapsack/pkg/constants"
	"github.com/LambdaTest/knapsack/pkg/core"
	"github.com/LambdaTest/knapsack/pkg/lumber"
)

type resolver struct {
	policy core.LineagePolicy
	limit  int
	logger lumber.Logger
}

// NewResolver returns a HistoryResolver. With allowFallback the primary lineage of the
// job's group is searched when the job's own builds have no usable report.
func NewResolver(allowFallback bool, logger lumber.Logger) core.HistoryResolver {
	var policy core.LineagePolicy = NoFallback{}
	if allowFallback {
		policy = NewPrimaryLineagePolicy(logger)
	}
	return NewResolverWithPolicy(policy, logger)
}

// NewResolverWithPolicy returns a HistoryResolver searching the lineage chosen by policy
// after the run's own.
func NewResolverWithPolicy(policy core.LineagePolicy, logger lumber.Logger) core.HistoryResolver {
	return &resolver{policy: policy, limit: constants.NumberOfBuildsToSearch, logger: logger}
}

func (r *resolver) ResolvePreviousDurations(run core.Run) map[string]*core.TestClass {
	tr := r.FindPreviousTestResult(run)
	if tr == nil {
		return nil
	}
	return Flatten(tr, r.logger)
}

// FindPreviousTestResult returns the test report of the reference build, nil if there is
// none.
func (r *resolver) FindPreviousTestResult(run core.Run) core.TestResult {
	// start with the previous build
	previous := run.Previous()
	if previous == nil {
		return nil
	}
	if reference := SearchLineage(previous, r.limit, r.logger); reference != nil {
		return reference.TestResult()
	}
	job := run.Job()
	if job == nil {
		return nil
	}
	start := r.policy.FallbackStart(job)
	if start == nil {
		return nil
	}
	r.logger.Infof("Scanning primary project for test records. Starting with build #%d", start.Number())
	if reference := SearchLineage(start, r.limit, r.logger); reference != nil {
		return reference.TestResult()
	}
	return nil
}

// SearchLineage walks back at most limit builds from start and returns the first one that
// finished successfully or unstable and archived a test report.
func SearchLineage(start core.Run, limit int, logger lumber.Logger) core.Run {
	b := start
	for i := 0; i < limit && b != nil; i++ {
		logger.Infof("Investigating build #%d as reference", b.Number())
		if usable(b.Result()) && b.TestResult() != nil {
			logger.Infof("Using build #%d as reference", b.Number())
			return b
		}
		b = b.Previous()
	}
	return nil
}

func usable(result core.BuildResult) bool {
	return result == core.BuildSuccess || result == core.BuildUnstable
}
