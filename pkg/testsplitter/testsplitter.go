// Package testsplitter divides the test classes of a build into sets of roughly equal
// duration.
package testsplitter

import (
	"github.com/LambdaTest/knapsack/pkg/core"
	"github.com/LambdaTest/knapsack/pkg/knapsackheap"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	"github.com/LambdaTest/knapsack/pkg/utils"
)

type testSplitter struct {
	parallelism core.Parallelism
	resolver    core.HistoryResolver
	logger      lumber.Logger
}

// NewTestSplitter returns a new TestSplitter
func NewTestSplitter(parallelism core.Parallelism,
	resolver core.HistoryResolver,
	logger lumber.Logger) core.TestSplitter {
	return &testSplitter{
		parallelism: parallelism,
		resolver:    resolver,
		logger:      logger,
	}
}

func (t *testSplitter) FindTestSplits(run core.Run, generateInclusions bool) []*core.InclusionExclusionPattern {
	data := t.resolver.ResolvePreviousDurations(run)
	if data == nil {
		t.logger.Infof("No record available, so executing everything in one place")
		return []*core.InclusionExclusionPattern{{Index: 0, Includes: false, Patterns: []string{}}}
	}

	// sort in the descending order of the duration
	sorted := make([]*core.TestClass, 0, len(data))
	for _, tc := range data {
		sorted = append(sorted, tc)
	}
	core.SortByDuration(sorted)

	// degree of the parallelism. we need minimum 1
	n := utils.Max(1, t.parallelism.Calculate(sorted))

	knapsacks := Balance(sorted, n)
	stats := ComputeStats(knapsacks, len(sorted))
	t.logger.Infof("%d test classes (%dms) divided into %d sets. Min=%dms, Average=%dms, Max=%dms, stddev=%dms",
		stats.Classes, stats.Total, stats.Splits, stats.Min, stats.Average, stats.Max, stats.StdDev)

	return Patterns(sorted, knapsacks, generateInclusions)
}

// Balance packs the test classes, sorted in descending order of duration, into n
// knapsacks. Packing optimally is NP-complete, so we pack greedily: the heaviest
// remaining class always goes into the lightest knapsack, which keeps the knapsacks
// roughly equal. The knapsacks are returned in index order.
func Balance(sorted []*core.TestClass, n int) []*core.Knapsack {
	h := knapsackheap.New(n)
	knapsacks := make([]*core.Knapsack, n)
	for _, k := range h {
		knapsacks[k.Index] = k
	}
	for _, tc := range sorted {
		h.UpdateHead(tc)
	}
	return knapsacks
}
