package observer_sweep

import (
	"context"
	"time"

	"tracker/pkg/logger"
)

type Hub interface {
	Sweep(ctx context.Context) int
	Len() int
}

// ObserverSweep пингует наблюдателей и выкидывает тех, чей транспорт не сообщил об обрыве.
type ObserverSweep struct {
	log      logger.Logger
	hub      Hub
	interval time.Duration
}

func New(log logger.Logger, hub Hub, interval time.Duration) *ObserverSweep {
	return &ObserverSweep{
		log:      log,
		hub:      hub,
		interval: interval,
	}
}

func (s *ObserverSweep) TTL() time.Duration {
	return s.interval
}

func (s *ObserverSweep) Do(ctx context.Context) error {
	if s.interval > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.interval)
		defer cancel()
	}

	evicted := s.hub.Sweep(ctx)
	if evicted > 0 {
		s.log.With(
			logger.NewField("evicted", evicted),
			logger.NewField("live", s.hub.Len()),
		).Info("observer sweep")
	}

	return nil
}

func (s *ObserverSweep) Info() string {
	return "observer sweep"
}
