// Package parallelism calculates how many splits a test run is divided into.
package parallelism

import (
	"github.com/LambdaTest/knapsack/pkg/core"
	errs "github.com/LambdaTest/knapsack/pkg/errors"
)

const millisPerMinute = 60 * 1000

// Count always uses a fixed number of splits.
type Count struct {
	Size int
}

// Calculate returns the configured size.
func (c Count) Calculate([]*core.TestClass) int {
	return c.Size
}

// TestsPerSplit puts at most Size test classes into one split.
type TestsPerSplit struct {
	Size int
}

// Calculate returns the number of splits needed for Size classes per split.
func (t TestsPerSplit) Calculate(sorted []*core.TestClass) int {
	if t.Size <= 0 {
		return 1
	}
	return ceilDiv(int64(len(sorted)), int64(t.Size))
}

// TimeBased aims for splits running Minutes each.
type TimeBased struct {
	Minutes int
}

// Calculate returns the total duration divided by the target duration per split.
func (t TimeBased) Calculate(sorted []*core.TestClass) int {
	if t.Minutes <= 0 {
		return 1
	}
	var total int64
	for _, tc := range sorted {
		total += tc.Duration
	}
	return ceilDiv(total, int64(t.Minutes)*millisPerMinute)
}

func ceilDiv(a, b int64) int {
	return int((a + b - 1) / b)
}

// New returns the parallelism for the configured mode.
func New(mode core.ParallelismMode, value int) (core.Parallelism, error) {
	switch mode {
	case core.ParallelismCount, "":
		return Count{Size: value}, nil
	case core.ParallelismTests:
		return TestsPerSplit{Size: value}, nil
	case core.ParallelismTime:
		return TimeBased{Minutes: value}, nil
	default:
		return nil, errs.ErrInvalidParallelism
	}
}
