package broadcast

import (
	"context"

	"tracker/internal/entities"
	"tracker/pkg/logger"
)

// Connection транспортный хэндл наблюдателя. Хаб хранит его как ключ map,
// поэтому реализации должны быть сравнимыми (указатели).
type Connection interface {
	Send(ctx context.Context, change entities.StatusChange) error
	Ping(ctx context.Context) error
	Close() error
}

type hubLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
