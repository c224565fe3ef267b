package kafka

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/IBM/sarama"
	"tracker/internal/pkg/config"
	"tracker/pkg/logger"
	retrierconfig "tracker/pkg/retrier"
	"tracker/pkg/retrier/backoff_adapter"
)

const (
	initialInterval = 1 * time.Second
	maxInterval     = 30 * time.Second
	maxElapsedTime  = 2 * time.Minute
	randomization   = 0.5
	multiplier      = 2
)

type Consumer struct {
	log     logger.Logger
	client  sarama.ConsumerGroup
	group   string
	topics  []string
	handler sarama.ConsumerGroupHandler
}

func NewSaramaConfig(
	versionStr string,
	autoCommit bool,
	initialOffset int64,
	rebalanceStrategy sarama.BalanceStrategy,
) (*sarama.Config, error) {
	cfg := sarama.NewConfig()

	version, err := sarama.ParseKafkaVersion(versionStr)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", versionStr, err)
	}
	cfg.Version = version

	cfg.Consumer.Offsets.Initial = initialOffset
	cfg.Consumer.Offsets.AutoCommit.Enable = autoCommit
	cfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{rebalanceStrategy}
	// ошибки claim'ов читаются в Start, иначе sarama их только логирует
	cfg.Consumer.Return.Errors = true

	return cfg, nil
}

// NewConsumer создаёт consumer group и ждёт, пока брокеры станут доступны.
func NewConsumer(ctx context.Context, log logger.Logger, cfg *config.Kafka, handler sarama.ConsumerGroupHandler) (*Consumer, error) {
	saramaConfig, err := NewSaramaConfig(
		cfg.Sarama.Version,
		cfg.Sarama.ConsumerOffsetsAutocommit,
		sarama.OffsetOldest,
		sarama.NewBalanceStrategySticky(),
	)
	if err != nil {
		return nil, fmt.Errorf("build saramaConfig: %w", err)
	}

	brokers := cfg.Brokers
	groupID := cfg.ConsumerGroup
	topics := []string{cfg.Topic}

	client, err := sarama.NewConsumerGroup(brokers, groupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	kafkaLog := log.With(
		logger.NewField("brokers", brokers),
		logger.NewField("group", groupID),
		logger.NewField("topics", topics),
	)

	err = pingKafka(ctx, kafkaLog, brokers, cfg.Topic, saramaConfig)
	if err != nil {
		clientCloseErr := client.Close()
		if clientCloseErr != nil {
			return nil, fmt.Errorf("kafka client connection: %w (failed to close: %w)", err, clientCloseErr)
		}
		return nil, fmt.Errorf("kafka connection: %w", err)
	}

	return &Consumer{
		log:     kafkaLog,
		client:  client,
		group:   groupID,
		topics:  topics,
		handler: handler,
	}, nil
}

// Start блокируется до отмены ctx. После ребаланса Consume вызывается заново.
func (c *Consumer) Start(ctx context.Context) error {
	c.log.Info("consumer starting")

	go func() {
		for err := range c.client.Errors() {
			ConsumerErrorsTotal.WithLabelValues(c.group).Inc()
			c.log.With(
				logger.NewField("error", err),
			).Warn("consumer group error")
		}
	}()

	for {
		ConsumerSessionsTotal.WithLabelValues(c.group).Inc()

		err := c.client.Consume(ctx, c.topics, c.handler)
		if err != nil {
			c.log.With(
				logger.NewField("error", err),
			).Error("consume failed")
			return fmt.Errorf("consumer error: %w", err)
		}

		if ctx.Err() != nil {
			c.log.Info("consumer stopped")
			return ctx.Err()
		}

		c.log.Info("consumer group rebalanced, rejoining")
	}
}

func (c *Consumer) Close() error {
	return c.client.Close()
}

// pingKafka ждёт брокеров и наличия топика: без топика consumer молча ничего не читает.
func pingKafka(ctx context.Context, log logger.Logger, brokers []string, topic string, cfg *sarama.Config) error {
	retryConfig := retrierconfig.Config{
		Name:            "kafka_ping",
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
	}

	retrier := backoff_adapter.New(retryConfig)

	var attempt uint64
	err := retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		log.With(
			logger.NewField("attempt", attempt),
		).Info("attempting Kafka connection")

		client, err := sarama.NewClient(brokers, cfg)
		if err != nil {
			return err
		}

		defer func() {
			err := client.Close()
			if err != nil {
				log.Error("failed to close Kafka connection",
					logger.NewField("error", err),
				)
			}
		}()

		topics, err := client.Topics()
		if err != nil {
			return err
		}
		if !slices.Contains(topics, topic) {
			return fmt.Errorf("topic %q not found", topic)
		}
		return nil
	})
	if err != nil {
		log.With(
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		).Error("Kafka connection failed after retries")
		return fmt.Errorf("failed to connect to Kafka: %w", err)
	}

	log.With(logger.NewField(
		"attempts", attempt),
	).Info("Kafka connection established")
	return nil
}
