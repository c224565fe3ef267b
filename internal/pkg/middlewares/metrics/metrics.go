package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	WebsocketSessionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "websocket_session_duration_seconds",
			Help:    "Lifetime of websocket sessions",
			Buckets: []float64{1, 10, 60, 300, 900, 3600, 14400},
		},
		[]string{"route"},
	)
)
