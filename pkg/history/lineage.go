package history

import (
	"github.com/LambdaTest/knapsack/pkg/core"
	"github.com/LambdaTest/knapsack/pkg/lumber"
)

// NoFallback never searches another lineage.
type NoFallback struct{}

// FallbackStart always returns nil.
func (NoFallback) FallbackStart(core.Job) core.Run { return nil }

// PrimaryLineagePolicy falls back to the latest build of the sibling flagged primary in a
// multi-lineage group. New branches have no history of their own, the primary branch
// gives a first estimate.
type PrimaryLineagePolicy struct {
	logger lumber.Logger
}

// NewPrimaryLineagePolicy returns a PrimaryLineagePolicy.
func NewPrimaryLineagePolicy(logger lumber.Logger) *PrimaryLineagePolicy {
	return &PrimaryLineagePolicy{logger: logger}
}

// FallbackStart returns the latest run of the primary sibling of job.
func (p *PrimaryLineagePolicy) FallbackStart(job core.Job) core.Run {
	// we only fall back to the primary lineage. If we are on that, we have no alternative
	if job.IsPrimary() {
		return nil
	}
	group := job.Parent()
	if group == nil || !group.MultiLineage() {
		p.logger.Infof("Parent folder is not a multi-lineage group")
		return nil
	}
	primary := findPrimary(group)
	if primary == nil {
		p.logger.Infof("Could not find a primary lineage to use as fallback")
		return nil
	}
	return primary.LastRun()
}

func findPrimary(group core.JobGroup) core.Job {
	for _, j := range group.Jobs() {
		if j.IsPrimary() {
			return j
		}
	}
	return nil
}
