package launcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/LambdaTest/knapsack/config"
	"github.com/LambdaTest/knapsack/pkg/collector"
	"github.com/LambdaTest/knapsack/pkg/constants"
	"github.com/LambdaTest/knapsack/pkg/core"
	errs "github.com/LambdaTest/knapsack/pkg/errors"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoProducer answers every request through the launcher with a fixed result.
type echoProducer struct {
	mu       sync.Mutex
	launcher *Launcher
	results  map[int]core.BuildResult
	failures int
	sent     []*core.LaunchRequest
}

func (p *echoProducer) Enqueue(_ context.Context, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failures > 0 {
		p.failures--
		return errors.New("broker unavailable")
	}
	req := payload.(*core.LaunchRequest)
	p.sent = append(p.sent, req)
	if result, ok := p.results[req.Collector]; ok {
		go p.launcher.Deliver(&core.LaunchResult{PlanID: req.PlanID, Collector: req.Collector, Result: result})
	}
	return nil
}

func (p *echoProducer) Close() error { return nil }

func requests(n int) []*core.LaunchRequest {
	cfg := &config.ExecutorConfig{TestJob: "unit-tests", PatternFile: "EXCLUDES_FILE"}
	splits := make([]*core.InclusionExclusionPattern, n)
	manifests := make([]string, n)
	for i := range splits {
		splits[i] = &core.InclusionExclusionPattern{Index: i}
		manifests[i] = "test-splits/" + splits[i].FileName()
	}
	return Requests("plan1", cfg, splits, manifests, collector.NewSequence())
}

func TestLaunch(t *testing.T) {
	p := &echoProducer{results: map[int]core.BuildResult{1: core.BuildSuccess, 2: core.BuildUnstable, 3: core.BuildSuccess}, failures: 1}
	l := New(p, time.Minute, lumber.NewTestLogger())
	p.launcher = l

	results, err := l.Launch(context.Background(), requests(3))
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, i+1, r.Collector)
	}
	assert.Equal(t, core.BuildUnstable, results[1].Result)
	assert.Len(t, p.sent, 3)
	l.mu.Lock()
	assert.Empty(t, l.waiting)
	l.mu.Unlock()
}

func TestLaunchTimeout(t *testing.T) {
	p := &echoProducer{results: map[int]core.BuildResult{1: core.BuildSuccess}}
	l := New(p, 50*time.Millisecond, lumber.NewTestLogger())
	p.launcher = l

	_, err := l.Launch(context.Background(), requests(2))
	assert.Equal(t, errs.ErrLaunchTimeout, err)
}

func TestNewDefaultsInvalidTimeout(t *testing.T) {
	for _, timeout := range []time.Duration{0, -time.Second} {
		l := New(&echoProducer{}, timeout, lumber.NewTestLogger())
		assert.Equal(t, time.Duration(constants.DefaultLaunchTimeout), l.timeout)
	}
	assert.Equal(t, time.Minute, New(&echoProducer{}, time.Minute, lumber.NewTestLogger()).timeout)
}

func TestLaunchCancelled(t *testing.T) {
	p := &echoProducer{}
	l := New(p, time.Minute, lumber.NewTestLogger())
	p.launcher = l
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Launch(ctx, requests(1))
	assert.Error(t, err)
}

func TestLaunchNothing(t *testing.T) {
	results, err := New(&echoProducer{}, time.Minute, lumber.NewTestLogger()).Launch(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, results)
}

func TestDeliverWithoutWaiter(t *testing.T) {
	l := New(&echoProducer{}, time.Minute, lumber.NewTestLogger())
	assert.NotPanics(t, func() {
		l.Deliver(&core.LaunchResult{PlanID: "nobody", Collector: 1})
	})
}

func TestRequests(t *testing.T) {
	cfg := &config.ExecutorConfig{
		TestJob:             "unit-tests",
		PatternFile:         "EXCLUDES_FILE",
		IncludesPatternFile: "INCLUDES_FILE",
		Parameters:          []string{"JDK=11"},
	}
	splits := []*core.InclusionExclusionPattern{{Index: 0}, {Index: 1, Includes: true}}
	manifests := []string{"test-splits/split.0.exclude.txt", "test-splits/split.1.include.txt"}
	seq := collector.NewSequence()

	reqs := Requests("plan1", cfg, splits, manifests, seq)
	require.Len(t, reqs, 2)
	assert.Equal(t, &core.LaunchRequest{
		PlanID:         "plan1",
		TestJob:        "unit-tests",
		Collector:      1,
		Parameters:     []string{"JDK=11"},
		FileParameters: map[string]string{"EXCLUDES_FILE": "test-splits/split.0.exclude.txt"},
	}, reqs[0])
	assert.Equal(t, map[string]string{"INCLUDES_FILE": "test-splits/split.1.include.txt"}, reqs[1].FileParameters)
	assert.Equal(t, 2, reqs[1].Collector)
	assert.Equal(t, 3, seq.Next())
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name    string
		results []core.BuildResult
		want    core.BuildResult
		wantErr error
	}{
		{"all passed", []core.BuildResult{core.BuildSuccess, core.BuildSuccess}, core.BuildSuccess, nil},
		{"none", nil, core.BuildSuccess, nil},
		{"unstable", []core.BuildResult{core.BuildSuccess, core.BuildUnstable}, core.BuildUnstable, nil},
		{"failure", []core.BuildResult{core.BuildFailure, core.BuildSuccess}, core.BuildUnstable, nil},
		{"not built", []core.BuildResult{core.BuildNotBuilt}, core.BuildUnstable, nil},
		{"aborted", []core.BuildResult{core.BuildUnstable, core.BuildAborted}, core.BuildFailure, errs.ErrTriggerAborted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := make([]*core.LaunchResult, len(tt.results))
			for i, r := range tt.results {
				results[i] = &core.LaunchResult{Collector: i + 1, Result: r}
			}
			got, err := Outcome(results)
			if err != tt.wantErr {
				t.Errorf("Outcome() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("Outcome() = %v, want %v", got, tt.want)
			}
		})
	}
}
