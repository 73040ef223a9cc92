package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/LambdaTest/knapsack/config"
	"github.com/LambdaTest/knapsack/pkg/api"
	"github.com/LambdaTest/knapsack/pkg/constants"
	errs "github.com/LambdaTest/knapsack/pkg/errors"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	"github.com/LambdaTest/knapsack/pkg/opentelemetry"
	"github.com/LambdaTest/knapsack/pkg/server"
	"github.com/spf13/cobra"
)

// RootCommand will setup and return the root command
func RootCommand() *cobra.Command {
	rootCmd := cobra.Command{
		Use:     "knapsack",
		Long:    `knapsack splits the test classes of a build into sets of similar duration, runs every set on the downstream test job and archives the collected reports for the next build.`,
		Version: constants.BinaryVersion,
		RunE:    run,
	}

	// define flags used for this command
	AttachCLIFlags(&rootCmd)
	rootCmd.AddCommand(splitCommand())

	return &rootCmd
}

func loadConfigAndLogger(cmd *cobra.Command) (*config.Config, lumber.Logger, error) {
	cfg, err := config.Load(cmd)
	if err != nil {
		fmt.Printf("Failed to load config: %v", err)
		return nil, nil, err
	}

	// patch logconfig file location with root level log file location
	if cfg.LogFile != "" {
		cfg.LogConfig.FileLocation = filepath.Join(cfg.LogFile, "knapsack.log")
	}

	// You can also use logrus implementation
	// by using lumber.InstanceLogrusLogger
	logger, err := lumber.NewLogger(&cfg.LogConfig, cfg.Verbose, lumber.InstanceZapLogger)
	if err != nil {
		log.Printf("could not instantiate logger %s", err.Error())
		return nil, nil, err
	}
	return cfg, logger, nil
}

func run(cmd *cobra.Command, args []string) error {
	// a WaitGroup for the goroutines to tell us they've stopped
	wg := sync.WaitGroup{}

	cfg, logger, err := loadConfigAndLogger(cmd)
	if err != nil {
		return err
	}

	// create a context that we can cancel
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize tracer
	if cfg.Tracing.OtelEndpoint != "" {
		tracerCleanup := opentelemetry.InitTracer(ctx, cfg, logger)
		defer func() {
			if tracerErr := tracerCleanup(context.Background()); tracerErr != nil {
				logger.Errorf("Failed to cleanup the tracer %v", tracerErr)
			}
		}()
	}

	a, err := setup(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close(logger)

	// create child context so as to stop the http server on SIGTERM/SIGINT
	// and fail health API, while running executions keep receiving results.
	childCtx, childCancel := context.WithCancel(ctx)
	defer childCancel()
	routers := api.New(ctx, cfg, a.executor, a.reportStore, a.azureClient, logger)

	wg.Add(1)
	// setup http server
	go func() {
		defer wg.Done()
		if err := server.ListenAndServe(childCtx, &routers, cfg, logger); err != nil {
			logger.Errorf("error while running http server %v", err)
		}
	}()

	wg.Add(1)
	// start launch result consumer
	go func() {
		defer wg.Done()
		a.resultConsumer.Run(ctx)
	}()

	// listen for C-c
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	// create channel to mark status of waitgroup
	// this is required to brutally kill application in case of
	// timeout
	done := make(chan struct{})

	// asynchronously wait for all the go routines
	go func() {
		// and wait for all go routines
		wg.Wait()
		logger.Debugf("main: all goroutines have finished.")
		close(done)
	}()
	// wait for signal channel
	<-c
	logger.Debugf("main: received close signal - attempting graceful shutdown ....")
	childCancel()
	// add some delay so as to allow the http server to drain
	time.Sleep(cfg.ShutDownDelay)
	// tell the goroutines to stop
	logger.Debugf("main: telling all goroutines to stop")
	cancel()
	select {
	case <-done:
		logger.Debugf("Go routines exited within timeout")
	case <-time.After(cfg.GracefulTimeout):
		logger.Errorf("Graceful timeout exceeded. Brutally killing the application")
		return errs.ErrTimeoutExceeded
	}
	return nil
}
