package cmd

import (
	"context"
	"errors"

	"github.com/LambdaTest/knapsack/config"
	"github.com/LambdaTest/knapsack/pkg/azure"
	"github.com/LambdaTest/knapsack/pkg/core"
	"github.com/LambdaTest/knapsack/pkg/db"
	errs "github.com/LambdaTest/knapsack/pkg/errors"
	"github.com/LambdaTest/knapsack/pkg/executor"
	"github.com/LambdaTest/knapsack/pkg/history"
	"github.com/LambdaTest/knapsack/pkg/launcher"
	"github.com/LambdaTest/knapsack/pkg/launchqueue"
	"github.com/LambdaTest/knapsack/pkg/lineage"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	"github.com/LambdaTest/knapsack/pkg/manifest"
	"github.com/LambdaTest/knapsack/pkg/parallelism"
	"github.com/LambdaTest/knapsack/pkg/redis"
	"github.com/LambdaTest/knapsack/pkg/store/builds"
	"github.com/LambdaTest/knapsack/pkg/store/jobs"
	"github.com/LambdaTest/knapsack/pkg/store/testreports"
	"github.com/LambdaTest/knapsack/pkg/tally"
	"github.com/LambdaTest/knapsack/pkg/testsplitter"
	"github.com/spf13/afero"
)

// app holds the wired components shared by the commands.
type app struct {
	executor       core.Executor
	reportStore    core.TestReportStore
	azureClient    core.AzureBlob
	resultConsumer core.QueueConsumer
	closers        []func() error
}

func (a *app) close(logger lumber.Logger) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Errorf("failed to close resource, error: %v", err)
		}
	}
}

// nolint:funlen
func setup(ctx context.Context, cfg *config.Config, logger lumber.Logger) (*app, error) {
	a := new(app)
	database, err := db.Connect(cfg, logger)
	if err != nil {
		logger.Errorf("failed to create database connection %v", err)
		return nil, err
	}
	a.closers = append(a.closers, database.Close)

	var redisDB core.RedisDB
	if cfg.Redis.Addr != "" {
		if redisDB, err = redis.New(ctx, cfg, logger); err != nil {
			logger.Errorf("failed to create redis database connection %v", err)
			a.close(logger)
			return nil, err
		}
		a.closers = append(a.closers, redisDB.Client().Close)
	}

	azureClient, err := azure.NewAzureBlobEnv(cfg, logger)
	switch {
	case errors.Is(err, errs.ErrAzureConfig):
		logger.Warnf("azure storage not configured, split manifests and test reports stay in the workspace")
		azureClient = nil
	case err != nil:
		logger.Errorf("could not instantiate azure client %v", err)
		a.close(logger)
		return nil, err
	}
	a.azureClient = azureClient

	policy, err := parallelism.New(core.ParallelismMode(cfg.Executor.ParallelismMode), cfg.Executor.ParallelismValue)
	if err != nil {
		logger.Errorf("invalid parallelism mode %q, error: %v", cfg.Executor.ParallelismMode, err)
		a.close(logger)
		return nil, err
	}

	buildStore := builds.New(database, logger)
	jobStore := jobs.New(database, logger)
	a.reportStore = testreports.New(database, redisDB, logger)

	resolver := history.NewResolver(cfg.Executor.AllowLineageFallback, logger)
	splitter := testsplitter.NewTestSplitter(policy, resolver, logger)
	fs := afero.NewOsFs()

	producer := launchqueue.NewProducer(cfg, logger)
	a.closers = append(a.closers, producer.Close)
	jobLauncher := launcher.New(producer, cfg.LaunchTimeout, logger)
	a.resultConsumer = launchqueue.NewConsumer(cfg, jobLauncher, logger)

	a.executor = executor.New(cfg,
		lineage.NewLoader(buildStore, jobStore, a.reportStore, cfg.Executor.AllowLineageFallback, logger),
		splitter,
		manifest.NewWriter(fs, azureClient, logger),
		jobLauncher,
		tally.NewArchiver(fs, cfg.Executor.TestReportFiles, a.reportStore, azureClient, logger),
		buildStore,
		logger)
	return a, nil
}
