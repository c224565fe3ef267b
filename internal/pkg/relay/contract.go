//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=relay_test
package relay

import (
	"context"

	"github.com/redis/go-redis/v9"
	"tracker/internal/entities"
	"tracker/pkg/logger"
)

type publishClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Sink локальный получатель изменений, обычно broadcast.Hub.
type Sink interface {
	Publish(change entities.StatusChange) error
}

type relayLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
