package kafka

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConsumerSessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_consumer_sessions_total",
			Help: "Consumer group sessions joined, one per rebalance",
		},
		[]string{"group"},
	)

	ConsumerErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_consumer_errors_total",
			Help: "Errors reported by the consumer group",
		},
		[]string{"group"},
	)
)
