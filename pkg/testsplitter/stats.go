package testsplitter

import (
	"math"

	"github.com/LambdaTest/knapsack/pkg/core"
)

// Stats describes how evenly the knapsacks are balanced. Durations are in milliseconds.
type Stats struct {
	Classes int
	Splits  int
	Total   int64
	Min     int64
	Average int64
	Max     int64
	StdDev  int64
}

// ComputeStats returns the balance statistics of the knapsacks.
func ComputeStats(knapsacks []*core.Knapsack, classes int) Stats {
	s := Stats{Classes: classes, Splits: len(knapsacks)}
	if len(knapsacks) == 0 {
		return s
	}
	s.Min = math.MaxInt64
	s.Max = math.MinInt64
	for _, k := range knapsacks {
		s.Total += k.Total
		if k.Total > s.Max {
			s.Max = k.Total
		}
		if k.Total < s.Min {
			s.Min = k.Total
		}
	}
	n := int64(len(knapsacks))
	s.Average = s.Total / n
	var variance int64
	for _, k := range knapsacks {
		d := k.Total - s.Average
		variance += d * d
	}
	variance /= n
	s.StdDev = int64(math.Sqrt(float64(variance)))
	return s
}
