package launchqueue

import (
	"context"
	"errors"
	"strings"

	"github.com/LambdaTest/knapsack/config"
	"github.com/LambdaTest/knapsack/pkg/core"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	"github.com/LambdaTest/knapsack/pkg/utils"
	"github.com/segmentio/kafka-go"
)

type consumer struct {
	topicName string
	reader    *kafka.Reader
	router    core.ResultRouter
	logger    lumber.Logger
}

// NewConsumer return a new consumer of the results reported by the downstream runs.
func NewConsumer(cfg *config.Config,
	router core.ResultRouter,
	logger lumber.Logger) core.QueueConsumer {
	reader := kafka.NewReader(readerConfig(cfg, logger))
	logger.Infof("Kafka Consumer Group %s created successfully", reader.Config().GroupID)

	return &consumer{
		topicName: reader.Config().Topic,
		reader:    reader,
		router:    router,
		logger:    logger,
	}
}

func (c *consumer) Run(ctx context.Context) {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			c.logger.Errorf("Kafka ReadMessage of topic: %v failed: %v", c.topicName, err)
			continue
		}
		c.logger.Debugf("Kafka: Message received on partition: %d, offset: %d, topic: %s", msg.Partition, msg.Offset, msg.Topic)
		result, err := decodeResult(msg)
		if err != nil {
			c.logger.Errorf("failed to unmarshal launch result, error: %v", err)
			continue
		}
		c.router.Deliver(result)
	}

	if err := c.Close(); err != nil {
		c.logger.Errorf("failed to closed kafka reader, error: %v", err)
		return
	}
	c.logger.Debugf("Kafka consumer closed successfully for topic %s", c.topicName)
}

func (c *consumer) Close() error {
	return c.reader.Close()
}

func decodeResult(msg kafka.Message) (*core.LaunchResult, error) {
	var result core.LaunchResult
	if err := json.Unmarshal(msg.Value, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// readerConfig gives every instance a consumer group of its own. A result is only awaited by
// the instance that launched its plan, so each instance reads the whole topic, starting
// from the newest offset.
func readerConfig(cfg *config.Config, logger lumber.Logger) kafka.ReaderConfig {
	return kafka.ReaderConfig{
		Brokers:               strings.Split(cfg.Kafka.Brokers, ","),
		Topic:                 cfg.Kafka.ResultConfig.Topic,
		ErrorLogger:           kafka.LoggerFunc(logger.Errorf),
		GroupID:               cfg.Kafka.ResultConfig.ConsumerGroup + "-" + utils.GenerateUUID(),
		StartOffset:           kafka.LastOffset,
		WatchPartitionChanges: true,
		GroupBalancers:        []kafka.GroupBalancer{kafka.RoundRobinGroupBalancer{}}}
}
