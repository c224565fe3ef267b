package retrier

import (
	"context"
	"time"
)

// Retrier повторяет fn, пока она не вернёт nil, не кончится бюджет или не отменится ctx.
type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

type (
	ShouldRetryFunc func(error) bool
	OnRetryFunc     func(err error, wait time.Duration)
)

type Config struct {
	// Name метка для метрик попыток, например "postgres_ping"
	Name string

	InitialInterval time.Duration
	MaxInterval     time.Duration
	// MaxElapsedTime 0 значит без ограничения по времени
	MaxElapsedTime time.Duration
	// MaxAttempts 0 значит без ограничения по числу попыток
	MaxAttempts   uint64
	Randomization float64
	Multiplier    float64

	// nil: ретраятся все ошибки
	ShouldRetry ShouldRetryFunc

	// вызывается перед каждой паузой, может быть nil
	OnRetry OnRetryFunc
}
