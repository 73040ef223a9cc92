// Package executor runs the parallel test step of a build: it plans the splits, hands
// them to the downstream test job and tallies what comes back.
package executor

import (
	"context"
	"errors"

	"github.com/LambdaTest/knapsack/config"
	"github.com/LambdaTest/knapsack/pkg/collector"
	"github.com/LambdaTest/knapsack/pkg/core"
	errs "github.com/LambdaTest/knapsack/pkg/errors"
	"github.com/LambdaTest/knapsack/pkg/launcher"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	"github.com/LambdaTest/knapsack/pkg/utils"
	pkgerrors "github.com/pkg/errors"
)

type executor struct {
	cfg        *config.Config
	loader     core.RunLoader
	splitter   core.TestSplitter
	writer     core.ManifestWriter
	launcher   core.JobLauncher
	archiver   core.ReportArchiver
	buildStore core.BuildStore
	logger     lumber.Logger
}

// New returns a new Executor
func New(cfg *config.Config,
	loader core.RunLoader,
	splitter core.TestSplitter,
	writer core.ManifestWriter,
	jobLauncher core.JobLauncher,
	archiver core.ReportArchiver,
	buildStore core.BuildStore,
	logger lumber.Logger) core.Executor {
	return &executor{
		cfg:        cfg,
		loader:     loader,
		splitter:   splitter,
		writer:     writer,
		launcher:   jobLauncher,
		archiver:   archiver,
		buildStore: buildStore,
		logger:     logger,
	}
}

func (e *executor) Plan(ctx context.Context, buildID string, generateInclusions bool) ([]*core.InclusionExclusionPattern, error) {
	run, _, err := e.loader.Load(ctx, buildID)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to load history of buildID %s", buildID)
	}
	return e.splitter.FindTestSplits(run, generateInclusions), nil
}

func (e *executor) Perform(ctx context.Context, buildID string) (core.BuildResult, error) {
	result, err := e.perform(ctx, buildID)
	if err != nil && errors.Is(err, errs.ErrBuildNotFound) {
		return result, err
	}
	storeCtx := ctx
	if ctx.Err() != nil {
		// an aborted build still records its result
		storeCtx = context.Background()
	}
	if markErr := e.buildStore.MarkStopped(storeCtx, buildID, result); markErr != nil {
		e.logger.Errorf("failed to store result %s of buildID %s, error: %v", result, buildID, markErr)
		if err == nil {
			err = markErr
		}
	}
	return result, err
}

func (e *executor) perform(ctx context.Context, buildID string) (core.BuildResult, error) {
	run, build, err := e.loader.Load(ctx, buildID)
	if err != nil {
		return core.BuildFailure, pkgerrors.Wrapf(err, "failed to load history of buildID %s", buildID)
	}
	workspace := e.cfg.Workspace
	if build.Workspace.Valid {
		workspace = build.Workspace.String
	}

	splits := e.splitter.FindTestSplits(run, e.cfg.Executor.IncludesPatternFile != "")
	planID := utils.GenerateUUID()
	manifests, err := e.writer.Write(ctx, workspace, planID, splits)
	if err != nil {
		return core.BuildFailure, pkgerrors.Wrapf(err, "failed to write manifests of buildID %s", buildID)
	}
	e.logger.Infof("Planned %d splits for buildID %s, planID %s", len(splits), buildID, planID)

	reqs := launcher.Requests(planID, &e.cfg.Executor, splits, manifests, collector.NewSequence())
	result := core.BuildSuccess
	// an aborted downstream run fails the build once the reports are archived
	var abortErr error
	results, err := e.launcher.Launch(ctx, reqs)
	switch {
	case errors.Is(err, context.Canceled):
		return core.BuildAborted, err
	case err != nil:
		e.logger.Errorf("failed to run downstream test jobs of buildID %s, error: %v", buildID, err)
		result = core.BuildUnstable
	default:
		if result, abortErr = launcher.Outcome(results); abortErr != nil {
			e.logger.Errorf("downstream test job of buildID %s was aborted", buildID)
		}
	}

	if e.cfg.Executor.ArchiveTestResults {
		if _, err := e.archiver.Tally(ctx, buildID, workspace); err != nil {
			e.logger.Errorf("failed to archive test results of buildID %s, error: %v", buildID, err)
			result = result.Combine(core.BuildUnstable)
		}
	}
	return result, abortErr
}
