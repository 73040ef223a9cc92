package testsplitter

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/LambdaTest/knapsack/pkg/core"
	"github.com/LambdaTest/knapsack/pkg/lineage"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	"github.com/LambdaTest/knapsack/pkg/parallelism"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticResolver map[string]*core.TestClass

func (s staticResolver) ResolvePreviousDurations(core.Run) map[string]*core.TestClass {
	if s == nil {
		return nil
	}
	// hand out fresh classes, every plan packs its own
	out := make(map[string]*core.TestClass, len(s))
	for k, v := range s {
		out[k] = core.NewTestClass(v.Name, v.Duration)
	}
	return out
}

func resolverOf(durations map[string]int64) staticResolver {
	s := staticResolver{}
	for name, d := range durations {
		s[name] = core.NewTestClass(name, d)
	}
	return s
}

func currentRun() core.Run {
	return lineage.NewJob("main", true).AddRun(1, core.BuildRunning, nil)
}

func randomClasses(r *rand.Rand, n int) []*core.TestClass {
	classes := make([]*core.TestClass, 0, n)
	for i := 0; i < n; i++ {
		classes = append(classes, core.NewTestClass(fmt.Sprintf("org.acme.Test%03d", i), r.Int63n(10000)))
	}
	core.SortByDuration(classes)
	return classes
}

func TestBalanceScenario(t *testing.T) {
	a := core.NewTestClass("A", 500)
	b := core.NewTestClass("B", 300)
	c := core.NewTestClass("C", 300)
	d := core.NewTestClass("D", 200)
	sorted := []*core.TestClass{a, b, c, d}

	knapsacks := Balance(sorted, 2)

	require.Len(t, knapsacks, 2)
	assert.Equal(t, int64(700), knapsacks[0].Total)
	assert.Equal(t, int64(600), knapsacks[1].Total)
	assert.Same(t, knapsacks[0], a.Knapsack())
	assert.Same(t, knapsacks[1], b.Knapsack())
	assert.Same(t, knapsacks[1], c.Knapsack())
	assert.Same(t, knapsacks[0], d.Knapsack())
}

func TestBalanceProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for _, n := range []int{1, 2, 3, 7, 16} {
		for _, size := range []int{1, 5, 40, 200} {
			t.Run(fmt.Sprintf("n%d_items%d", n, size), func(t *testing.T) {
				classes := randomClasses(r, size)
				knapsacks := Balance(classes, n)
				require.Len(t, knapsacks, n)

				sums := make(map[*core.Knapsack]int64, n)
				for _, tc := range classes {
					require.NotNil(t, tc.Knapsack(), "%s was not packed", tc.Name)
					sums[tc.Knapsack()] += tc.Duration
				}
				stats := ComputeStats(knapsacks, len(classes))
				for _, k := range knapsacks {
					assert.Equal(t, sums[k], k.Total)
				}
				assert.LessOrEqual(t, stats.Max-stats.Min, classes[0].Duration)
			})
		}
	}
}

func TestBalanceDeterministic(t *testing.T) {
	assignments := func() []int {
		classes := randomClasses(rand.New(rand.NewSource(7)), 100)
		Balance(classes, 6)
		out := make([]int, 0, len(classes))
		for _, tc := range classes {
			out = append(out, tc.Knapsack().Index)
		}
		return out
	}
	assert.Equal(t, assignments(), assignments())
}

func TestBalanceEmpty(t *testing.T) {
	knapsacks := Balance(nil, 3)
	require.Len(t, knapsacks, 3)
	for i, k := range knapsacks {
		assert.Equal(t, i, k.Index)
		assert.Zero(t, k.Total)
	}
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats([]*core.Knapsack{{Total: 700}, {Index: 1, Total: 600}}, 4)
	assert.Equal(t, Stats{Classes: 4, Splits: 2, Total: 1300, Min: 600, Average: 650, Max: 700, StdDev: 50}, stats)
}

func TestFindTestSplitsWithoutHistory(t *testing.T) {
	logger := lumber.NewBufferLogger()
	splitter := NewTestSplitter(parallelism.Count{Size: 5}, staticResolver(nil), logger)
	for _, inclusions := range []bool{false, true} {
		splits := splitter.FindTestSplits(currentRun(), inclusions)
		require.Len(t, splits, 1)
		assert.False(t, splits[0].Includes)
		assert.Empty(t, splits[0].Patterns)
	}
	assert.Contains(t, logger.Lines(), "No record available, so executing everything in one place")
}

func TestFindTestSplitsClampsParallelism(t *testing.T) {
	resolver := resolverOf(map[string]int64{"a.ATest": 10, "b.BTest": 20})
	for _, size := range []int{0, -3} {
		splits := NewTestSplitter(parallelism.Count{Size: size}, resolver, lumber.NewTestLogger()).
			FindTestSplits(currentRun(), false)
		require.Len(t, splits, 1)
		assert.Empty(t, splits[0].Patterns)
	}
}

func TestFindTestSplitsEmptyReport(t *testing.T) {
	splits := NewTestSplitter(parallelism.Count{Size: 3}, staticResolver{}, lumber.NewTestLogger()).
		FindTestSplits(currentRun(), true)
	require.Len(t, splits, 3)
	for _, s := range splits {
		assert.Empty(t, s.Patterns)
	}
	assert.False(t, splits[0].Includes)
	assert.True(t, splits[1].Includes)
}

func TestFindTestSplitsScenario(t *testing.T) {
	resolver := resolverOf(map[string]int64{"p.A": 500, "p.B": 300, "p.C": 300, "p.D": 200})
	logger := lumber.NewBufferLogger()
	splitter := NewTestSplitter(parallelism.Count{Size: 2}, resolver, logger)

	legacy := splitter.FindTestSplits(currentRun(), false)
	require.Len(t, legacy, 2)
	assert.Equal(t, &core.InclusionExclusionPattern{Index: 0, Patterns: []string{
		"p/B.java", "p/B.class", "p/C.java", "p/C.class",
	}}, legacy[0])
	assert.Equal(t, &core.InclusionExclusionPattern{Index: 1, Patterns: []string{
		"p/A.java", "p/A.class", "p/D.java", "p/D.class",
	}}, legacy[1])
	assert.Contains(t, logger.Lines(),
		"4 test classes (1300ms) divided into 2 sets. Min=600ms, Average=650ms, Max=700ms, stddev=50ms")

	inclusive := splitter.FindTestSplits(currentRun(), true)
	require.Len(t, inclusive, 2)
	assert.Equal(t, legacy[0], inclusive[0])
	assert.Equal(t, &core.InclusionExclusionPattern{Index: 1, Includes: true, Patterns: []string{
		"p/B.java", "p/B.class", "p/C.java", "p/C.class",
	}}, inclusive[1])
}
