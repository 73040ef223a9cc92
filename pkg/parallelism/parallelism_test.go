package parallelism

import (
	"testing"

	"github.com/LambdaTest/knapsack/pkg/core"
	errs "github.com/LambdaTest/knapsack/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classes(durations ...int64) []*core.TestClass {
	out := make([]*core.TestClass, 0, len(durations))
	for i, d := range durations {
		out = append(out, core.NewTestClass(string(rune('A'+i)), d))
	}
	return out
}

func TestCalculate(t *testing.T) {
	minute := int64(60000)
	tests := []struct {
		name        string
		parallelism core.Parallelism
		classes     []*core.TestClass
		want        int
	}{
		{name: "count", parallelism: Count{Size: 5}, classes: classes(1, 2), want: 5},
		{name: "count_zero", parallelism: Count{Size: 0}, classes: classes(1), want: 0},
		{name: "tests_exact", parallelism: TestsPerSplit{Size: 2}, classes: classes(1, 2, 3, 4), want: 2},
		{name: "tests_round_up", parallelism: TestsPerSplit{Size: 3}, classes: classes(1, 2, 3, 4), want: 2},
		{name: "tests_empty", parallelism: TestsPerSplit{Size: 3}, classes: nil, want: 0},
		{name: "tests_invalid", parallelism: TestsPerSplit{Size: 0}, classes: classes(1), want: 1},
		{name: "time", parallelism: TimeBased{Minutes: 2}, classes: classes(3*minute, 2*minute), want: 3},
		{name: "time_exact", parallelism: TimeBased{Minutes: 1}, classes: classes(minute, minute), want: 2},
		{name: "time_invalid", parallelism: TimeBased{Minutes: -1}, classes: classes(minute), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.parallelism.Calculate(tt.classes))
		})
	}
}

func TestNew(t *testing.T) {
	p, err := New(core.ParallelismTime, 10)
	require.NoError(t, err)
	assert.Equal(t, TimeBased{Minutes: 10}, p)

	p, err = New("", 3)
	require.NoError(t, err)
	assert.Equal(t, Count{Size: 3}, p)

	_, err = New("random", 3)
	assert.Equal(t, errs.ErrInvalidParallelism, err)
}
