// Package lineage materializes the build history a test split is planned from.
package lineage

import (
	"context"
	"errors"

	"github.com/LambdaTest/knapsack/pkg/constants"
	"github.com/LambdaTest/knapsack/pkg/core"
	errs "github.com/LambdaTest/knapsack/pkg/errors"
	"github.com/LambdaTest/knapsack/pkg/lumber"
)

type loader struct {
	buildStore    core.BuildStore
	jobStore      core.JobStore
	reportStore   core.TestReportStore
	allowFallback bool
	logger        lumber.Logger
}

// NewLoader returns a RunLoader backed by the datastores. It loads only what the history
// search can reach: the builds preceding the requested one and the latest builds of the
// primary sibling, each capped to the search limit. The primary sibling's builds are only
// loaded when allowFallback is set.
func NewLoader(buildStore core.BuildStore,
	jobStore core.JobStore,
	reportStore core.TestReportStore,
	allowFallback bool,
	logger lumber.Logger) core.RunLoader {
	return &loader{
		buildStore:    buildStore,
		jobStore:      jobStore,
		reportStore:   reportStore,
		allowFallback: allowFallback,
		logger:        logger,
	}
}

func (l *loader) Load(ctx context.Context, buildID string) (core.Run, *core.Build, error) {
	build, err := l.buildStore.Find(ctx, buildID)
	if err != nil {
		if errors.Is(err, errs.ErrRowsNotFound) {
			return nil, nil, errs.ErrBuildNotFound
		}
		l.logger.Errorf("failed to find buildID %s, error: %v", buildID, err)
		return nil, nil, err
	}
	jobRecord, err := l.jobStore.Find(ctx, build.JobID)
	if err != nil {
		l.logger.Errorf("failed to find jobID %s of buildID %s, error: %v", build.JobID, buildID, err)
		return nil, nil, err
	}
	job := NewJob(jobRecord.Name, jobRecord.Primary)
	previous, err := l.buildStore.FindPrevious(ctx, jobRecord.ID, build.Number, constants.NumberOfBuildsToSearch)
	if err != nil && !errors.Is(err, errs.ErrRowsNotFound) {
		l.logger.Errorf("failed to find builds before #%d of jobID %s, error: %v", build.Number, jobRecord.ID, err)
		return nil, nil, err
	}
	if err := l.addRuns(ctx, job, previous); err != nil {
		return nil, nil, err
	}
	current := job.AddRun(build.Number, build.Result, nil)

	if jobRecord.GroupID.Valid {
		group, err := l.loadGroup(ctx, jobRecord, job)
		if err != nil {
			return nil, nil, err
		}
		l.logger.Debugf("loaded %d jobs of groupID %s", len(group.jobs), jobRecord.GroupID.String)
	}
	return current, build, nil
}

func (l *loader) loadGroup(ctx context.Context, jobRecord *core.JobRecord, job *Job) (*Group, error) {
	group := NewGroup(jobRecord.MultiLineage)
	siblings, err := l.jobStore.FindByGroup(ctx, jobRecord.GroupID.String)
	if err != nil && !errors.Is(err, errs.ErrRowsNotFound) {
		l.logger.Errorf("failed to find jobs of groupID %s, error: %v", jobRecord.GroupID.String, err)
		return nil, err
	}
	group.Add(job)
	for _, sibling := range siblings {
		if sibling.ID == jobRecord.ID {
			continue
		}
		siblingJob := NewJob(sibling.Name, sibling.Primary)
		// only the primary sibling's history can be searched
		if l.allowFallback && sibling.Primary && !jobRecord.Primary && jobRecord.MultiLineage {
			latest, err := l.buildStore.FindLatest(ctx, sibling.ID, constants.NumberOfBuildsToSearch)
			if err != nil && !errors.Is(err, errs.ErrRowsNotFound) {
				l.logger.Errorf("failed to find latest builds of jobID %s, error: %v", sibling.ID, err)
				return nil, err
			}
			if err := l.addRuns(ctx, siblingJob, latest); err != nil {
				return nil, err
			}
		}
		group.Add(siblingJob)
	}
	return group, nil
}

// addRuns adds the builds, given newest first, to the job.
func (l *loader) addRuns(ctx context.Context, job *Job, builds []*core.Build) error {
	for i := len(builds) - 1; i >= 0; i-- {
		b := builds[i]
		var tr core.TestResult
		if b.Result == core.BuildSuccess || b.Result == core.BuildUnstable {
			report, err := l.reportStore.Find(ctx, b.ID)
			switch {
			case err == nil:
				tr = report
			case errors.Is(err, errs.ErrRowsNotFound):
			default:
				l.logger.Errorf("failed to find test report of buildID %s, error: %v", b.ID, err)
				return err
			}
		}
		job.AddRun(b.Number, b.Result, tr)
	}
	return nil
}
