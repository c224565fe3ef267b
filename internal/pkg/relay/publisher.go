package relay

import (
	"context"
	"fmt"

	"tracker/internal/entities"
)

// Publisher отправляет закоммиченные изменения в канал Redis.
// Реализует order.Notifier в процессах без собственных наблюдателей.
type Publisher struct {
	client  publishClient
	channel string
}

func NewPublisher(client publishClient, channel string) *Publisher {
	return &Publisher{
		client:  client,
		channel: channel,
	}
}

func (p *Publisher) Notify(ctx context.Context, change entities.StatusChange) error {
	payload, err := Encode(change)
	if err != nil {
		return err
	}

	err = p.client.Publish(ctx, p.channel, payload).Err()
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.channel, err)
	}

	return nil
}
