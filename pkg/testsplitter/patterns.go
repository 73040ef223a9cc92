package testsplitter

import (
	"github.com/LambdaTest/knapsack/pkg/constants"
	"github.com/LambdaTest/knapsack/pkg/core"
)

// Patterns returns one selector per knapsack.
//
// Without inclusions every split excludes the classes of all other knapsacks. With
// inclusions the first split excludes the classes packed into any other knapsack, so it
// also picks up classes nobody claimed, and every other split includes its own classes.
func Patterns(sorted []*core.TestClass, knapsacks []*core.Knapsack, generateInclusions bool) []*core.InclusionExclusionPattern {
	r := make([]*core.InclusionExclusionPattern, 0, len(knapsacks))
	for i, k := range knapsacks {
		includes := generateInclusions && i != 0
		elements := []string{}
		for _, tc := range sorted {
			if selected(tc, k, includes, generateInclusions) {
				elements = append(elements, tc.SourceFileName(constants.JavaSourceExt), tc.SourceFileName(constants.JavaClassExt))
			}
		}
		r = append(r, &core.InclusionExclusionPattern{Index: i, Includes: includes, Patterns: elements})
	}
	return r
}

func selected(tc *core.TestClass, k *core.Knapsack, includes, generateInclusions bool) bool {
	owner := tc.Knapsack()
	switch {
	case includes:
		return owner == k
	case generateInclusions:
		return owner != nil && owner != k
	default:
		return owner != k
	}
}
