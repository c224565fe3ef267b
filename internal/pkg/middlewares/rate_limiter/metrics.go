package rate_limiter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RateLimitDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_decisions_total",
			Help: "Rate limiter decisions by route template and decision (allowed, rejected)",
		},
		[]string{"route", "decision"},
	)

	RateLimitTokens = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limit_tokens",
			Help: "Tokens left in the process-wide bucket after the last decision",
		},
	)
)
