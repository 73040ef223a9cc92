package launchqueue

import (
	"context"
	"strings"

	"github.com/LambdaTest/knapsack/config"
	"github.com/LambdaTest/knapsack/pkg/core"
	errs "github.com/LambdaTest/knapsack/pkg/errors"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	jsoniter "github.com/json-iterator/go"
	"github.com/segmentio/kafka-go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type producer struct {
	topicName   string
	kafkaWriter *kafka.Writer
	logger      lumber.Logger
}

// NewProducer return a new launch queue producer.
func NewProducer(cfg *config.Config,
	logger lumber.Logger) core.QueueProducer {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:          strings.Split(cfg.Kafka.Brokers, ","),
		Topic:            cfg.Kafka.LaunchConfig.Topic,
		ErrorLogger:      kafka.LoggerFunc(logger.Errorf),
		Balancer:         &kafka.Hash{},
		CompressionCodec: kafka.Snappy.Codec(),
		RequiredAcks:     int(kafka.RequireOne), // will wait for acknowledgement from only master.
	})
	logger.Infof("Kafka Producer connection created successfully for topic %s", writer.Topic)
	return &producer{
		logger:      logger,
		topicName:   writer.Topic,
		kafkaWriter: writer,
	}
}

func (p *producer) Enqueue(ctx context.Context, item interface{}) error {
	payload, ok := item.(*core.LaunchRequest)
	if !ok {
		p.logger.Errorf("Invalid launch queue payload %v", item)
		return errs.ErrInvalidQueuePayload
	}
	msg, err := encodeRequest(payload)
	if err != nil {
		p.logger.Errorf("failed to marshal message for planID %s, collector %d, error: %v", payload.PlanID, payload.Collector, err)
		return err
	}
	if err = p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.Errorf("failed to write message in kafka topic %s, planID %s, collector %d, error: %v",
			p.topicName, payload.PlanID, payload.Collector, err)
		return err
	}
	return nil
}

func (p *producer) Close() error {
	return p.kafkaWriter.Close()
}

// encodeRequest keys the message by plan so the runs of one plan share a partition.
func encodeRequest(req *core.LaunchRequest) (kafka.Message, error) {
	rawMessage, err := json.Marshal(req)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{Key: []byte(req.PlanID), Value: rawMessage}, nil
}
