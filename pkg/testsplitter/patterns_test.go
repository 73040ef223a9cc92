package testsplitter

import (
	"math/rand"
	"testing"

	"github.com/LambdaTest/knapsack/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setOf(patterns []string) map[string]struct{} {
	s := make(map[string]struct{}, len(patterns))
	for _, p := range patterns {
		s[p] = struct{}{}
	}
	return s
}

func membersOf(classes []*core.TestClass, k *core.Knapsack) map[string]struct{} {
	s := map[string]struct{}{}
	for _, tc := range classes {
		if tc.Knapsack() == k {
			s[tc.SourceFileName(".java")] = struct{}{}
			s[tc.SourceFileName(".class")] = struct{}{}
		}
	}
	return s
}

func TestPatternsLegacyComplementary(t *testing.T) {
	classes := randomClasses(rand.New(rand.NewSource(3)), 60)
	knapsacks := Balance(classes, 4)
	splits := Patterns(classes, knapsacks, false)
	require.Len(t, splits, 4)

	all := map[string]struct{}{}
	for _, k := range knapsacks {
		for p := range membersOf(classes, k) {
			all[p] = struct{}{}
		}
	}
	for i, s := range splits {
		assert.False(t, s.Includes)
		excluded := setOf(s.Patterns)
		// a split excludes exactly what it does not run
		for p := range all {
			_, isExcluded := excluded[p]
			_, isMember := membersOf(classes, knapsacks[i])[p]
			assert.NotEqual(t, isExcluded, isMember, "split %d, pattern %s", i, p)
		}
	}
}

func TestPatternsInclusionRoundTrip(t *testing.T) {
	classes := randomClasses(rand.New(rand.NewSource(5)), 60)
	knapsacks := Balance(classes, 5)
	splits := Patterns(classes, knapsacks, true)
	require.Len(t, splits, 5)

	assert.False(t, splits[0].Includes)
	excluded := setOf(splits[0].Patterns)
	union := map[string]struct{}{}
	for _, s := range splits[1:] {
		assert.True(t, s.Includes)
		for p := range setOf(s.Patterns) {
			union[p] = struct{}{}
		}
	}
	assert.Equal(t, excluded, union)
	for p := range membersOf(classes, knapsacks[0]) {
		assert.NotContains(t, excluded, p)
	}
}

func TestPatternsUnassignedClass(t *testing.T) {
	packed := core.NewTestClass("org.Packed", 10)
	stray := core.NewTestClass("org.Stray", 5)
	knapsacks := Balance([]*core.TestClass{packed}, 2)
	classes := []*core.TestClass{packed, stray}

	// only the first inclusion split can still pick it up
	inclusive := Patterns(classes, knapsacks, true)
	assert.Empty(t, inclusive[0].Patterns)
	assert.Empty(t, inclusive[1].Patterns)

	legacy := Patterns(classes, knapsacks, false)
	assert.Equal(t, []string{"org/Stray.java", "org/Stray.class"}, legacy[0].Patterns)
}
