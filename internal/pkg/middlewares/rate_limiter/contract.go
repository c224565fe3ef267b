package rate_limiter

import "tracker/pkg/logger"

// Limiter реализует *rate.Limiter из golang.org/x/time/rate.
type Limiter interface {
	Allow() bool
	Tokens() float64
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
