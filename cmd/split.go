package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/LambdaTest/knapsack/pkg/core"
	"github.com/spf13/cobra"
)

func splitCommand() *cobra.Command {
	splitCmd := &cobra.Command{
		Use:   "split",
		Short: "Run the parallel test step of one build and exit",
		RunE:  runSplit,
	}
	splitCmd.Flags().StringP("build", "b", "", "id of the build to run")
	_ = splitCmd.MarkFlagRequired("build")
	return splitCmd
}

func runSplit(cmd *cobra.Command, args []string) error {
	buildID, _ := cmd.Flags().GetString("build")
	cfg, logger, err := loadConfigAndLogger(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close(logger)

	consumerCtx, stopConsumer := context.WithCancel(ctx)
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		a.resultConsumer.Run(consumerCtx)
	}()

	result, err := a.executor.Perform(ctx, buildID)
	stopConsumer()
	<-consumerDone
	if err != nil {
		logger.Errorf("parallel test execution of buildID %s failed: %v", buildID, err)
		return err
	}
	logger.Infof("parallel test execution of buildID %s finished with %s", buildID, result)
	if result.IsWorseThan(core.BuildUnstable) {
		return fmt.Errorf("build %s finished with %s", buildID, result)
	}
	return nil
}
