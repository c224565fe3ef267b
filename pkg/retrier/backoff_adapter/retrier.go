package backoff_adapter

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"tracker/pkg/retrier"
)

const defaultName = "default"

var AttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "retrier_attempts_total",
		Help: "Attempts made through the retrier by name and attempt result",
	},
	[]string{"name", "result"},
)

type Retrier struct {
	config retrier.Config
	name   string
}

func New(config retrier.Config) *Retrier {
	name := config.Name
	if name == "" {
		name = defaultName
	}

	return &Retrier{
		config: config,
		name:   name,
	}
}

func (r *Retrier) ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error {
	var b backoff.BackOff = backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(r.config.InitialInterval),
		backoff.WithMaxInterval(r.config.MaxInterval),
		backoff.WithMaxElapsedTime(r.config.MaxElapsedTime),
		backoff.WithRandomizationFactor(r.config.Randomization),
		backoff.WithMultiplier(r.config.Multiplier),
	)
	if r.config.MaxAttempts > 0 {
		b = backoff.WithMaxRetries(b, r.config.MaxAttempts-1)
	}

	operation := func() error {
		err := fn(ctx)
		switch {
		case err == nil:
			AttemptsTotal.WithLabelValues(r.name, "success").Inc()
			return nil
		case r.config.ShouldRetry != nil && !r.config.ShouldRetry(err):
			AttemptsTotal.WithLabelValues(r.name, "permanent").Inc()
			return backoff.Permanent(err)
		default:
			AttemptsTotal.WithLabelValues(r.name, "failed").Inc()
			return err
		}
	}

	var notify backoff.Notify
	if r.config.OnRetry != nil {
		notify = func(err error, wait time.Duration) {
			r.config.OnRetry(err, wait)
		}
	}

	return backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify)
}
