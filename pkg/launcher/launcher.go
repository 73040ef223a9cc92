// Package launcher starts one run of the downstream test job per split and waits for
// their results.
package launcher

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/LambdaTest/knapsack/config"
	"github.com/LambdaTest/knapsack/pkg/collector"
	"github.com/LambdaTest/knapsack/pkg/constants"
	"github.com/LambdaTest/knapsack/pkg/core"
	errs "github.com/LambdaTest/knapsack/pkg/errors"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	"github.com/avast/retry-go/v4"
)

const (
	maxRetries = 3
	delay      = 250 * time.Millisecond
	maxJitter  = 100 * time.Millisecond
)

// Launcher publishes launch requests and routes the reported results back to the
// waiting plan. It implements both core.JobLauncher and core.ResultRouter.
type Launcher struct {
	producer core.QueueProducer
	timeout  time.Duration
	logger   lumber.Logger

	mu      sync.Mutex
	waiting map[string]chan *core.LaunchResult
}

// New returns a Launcher waiting at most timeout for the results of a plan. A timeout that
// is not positive is replaced by the default launch timeout.
func New(producer core.QueueProducer, timeout time.Duration, logger lumber.Logger) *Launcher {
	if timeout <= 0 {
		logger.Warnf("invalid launch timeout %s, using %s", timeout, time.Duration(constants.DefaultLaunchTimeout))
		timeout = constants.DefaultLaunchTimeout
	}
	return &Launcher{
		producer: producer,
		timeout:  timeout,
		logger:   logger,
		waiting:  make(map[string]chan *core.LaunchResult),
	}
}

// Launch publishes every request and blocks until each collector reported back. All
// requests must belong to the same plan. Results are returned in collector order.
func (l *Launcher) Launch(ctx context.Context, reqs []*core.LaunchRequest) ([]*core.LaunchResult, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	planID := reqs[0].PlanID
	ch := l.register(planID, len(reqs))
	defer l.unregister(planID)

	pending := make(map[int]bool, len(reqs))
	for _, req := range reqs {
		if err := l.publish(ctx, req); err != nil {
			return nil, err
		}
		pending[req.Collector] = true
		l.logger.Infof("Scheduled run #%d of %s for plan %s", req.Collector, req.TestJob, planID)
	}

	timer := time.NewTimer(l.timeout)
	defer timer.Stop()
	results := make([]*core.LaunchResult, 0, len(reqs))
	for len(pending) > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
			l.logger.Errorf("plan %s: %d runs did not report back within %s", planID, len(pending), l.timeout)
			return nil, errs.ErrLaunchTimeout
		case r := <-ch:
			if !pending[r.Collector] {
				l.logger.Warnf("plan %s: ignoring unexpected result of run #%d", planID, r.Collector)
				continue
			}
			delete(pending, r.Collector)
			results = append(results, r)
			l.logger.Infof("Run #%d of plan %s finished: %s", r.Collector, planID, r.Result)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Collector < results[j].Collector })
	return results, nil
}

// Deliver hands a reported result to the plan waiting for it.
func (l *Launcher) Deliver(result *core.LaunchResult) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.waiting[result.PlanID]
	if !ok {
		l.logger.Debugf("no plan waiting for result of run #%d, plan %s", result.Collector, result.PlanID)
		return
	}
	select {
	case ch <- result:
	default:
		l.logger.Warnf("dropping duplicate result of run #%d, plan %s", result.Collector, result.PlanID)
	}
}

func (l *Launcher) register(planID string, n int) chan *core.LaunchResult {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch := make(chan *core.LaunchResult, n)
	l.waiting[planID] = ch
	return ch
}

func (l *Launcher) unregister(planID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.waiting, planID)
}

func (l *Launcher) publish(ctx context.Context, req *core.LaunchRequest) error {
	return retry.Do(func() error {
		return l.producer.Enqueue(ctx, req)
	}, retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.Attempts(maxRetries),
		retry.Delay(delay),
		retry.MaxJitter(maxJitter),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, errs.ErrInvalidQueuePayload)
		}),
		retry.OnRetry(func(n uint, err error) {
			l.logger.Errorf("failed to schedule run #%d of plan %s, retry %d, error: %v", req.Collector, req.PlanID, n, err)
		}),
	)
}

// Requests builds one launch request per split. Every split gets a fresh collector tag
// from seq and its manifest bound to the pattern file parameter of its mode.
func Requests(planID string, cfg *config.ExecutorConfig, splits []*core.InclusionExclusionPattern,
	manifests []string, seq *collector.Sequence) []*core.LaunchRequest {
	reqs := make([]*core.LaunchRequest, 0, len(splits))
	for i, split := range splits {
		param := cfg.PatternFile
		if split.Includes {
			param = cfg.IncludesPatternFile
		}
		req := &core.LaunchRequest{
			PlanID:     planID,
			TestJob:    cfg.TestJob,
			Collector:  seq.Next(),
			Parameters: cfg.Parameters,
		}
		if param != "" && i < len(manifests) {
			req.FileParameters = map[string]string{param: manifests[i]}
		}
		reqs = append(reqs, req)
	}
	return reqs
}

// Outcome folds the results of the downstream runs into the result of the build. An
// aborted run fails the build, a failed or unstable one makes it unstable.
func Outcome(results []*core.LaunchResult) (core.BuildResult, error) {
	outcome := core.BuildSuccess
	for _, r := range results {
		if r.Result == core.BuildAborted {
			return core.BuildFailure, errs.ErrTriggerAborted
		}
		if r.Result.IsWorseThan(core.BuildSuccess) {
			outcome = core.BuildUnstable
		}
	}
	return outcome, nil
}
