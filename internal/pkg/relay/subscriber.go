package relay

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"tracker/pkg/logger"
)

// Subscriber читает канал Redis и передаёт изменения в локальный хаб.
type Subscriber struct {
	client  *redis.Client
	channel string
	sink    Sink
	log     relayLogger
}

func NewSubscriber(log relayLogger, client *redis.Client, channel string, sink Sink) *Subscriber {
	return &Subscriber{
		client:  client,
		channel: channel,
		sink:    sink,
		log: log.With(
			logger.NewField("component", "relay-subscriber"),
			logger.NewField("channel", channel),
		),
	}
}

// Run блокируется до отмены ctx или закрытия подписки.
func (s *Subscriber) Run(ctx context.Context) error {
	pubsub := s.client.Subscribe(ctx, s.channel)
	defer func() {
		err := pubsub.Close()
		if err != nil {
			s.log.Warn("failed to close redis subscription",
				logger.NewField("error", err),
			)
		}
	}()

	_, err := pubsub.Receive(ctx)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", s.channel, err)
	}

	s.log.Info("relay subscriber started")

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("relay subscriber stopped")
			return nil
		case msg, ok := <-messages:
			if !ok {
				return fmt.Errorf("subscription to %s closed", s.channel)
			}
			s.Handle(msg.Payload)
		}
	}
}

// Handle разбирает одно сообщение. Битые сообщения и переполнение очереди хаба только логируются.
func (s *Subscriber) Handle(payload string) {
	change, err := Decode(payload)
	if err != nil {
		s.log.Warn("relay message skipped",
			logger.NewField("error", err),
		)
		return
	}

	err = s.sink.Publish(change)
	if err != nil {
		s.log.Warn("relay message dropped",
			logger.NewField("order", change.OrderID),
			logger.NewField("error", err),
		)
	}
}
