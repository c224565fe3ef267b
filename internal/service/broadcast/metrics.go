package broadcast

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ObserversLive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "broadcast_observers_live",
			Help: "Number of currently registered live observers",
		},
	)

	DeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcast_deliveries_total",
			Help: "Total number of status change sends to observers by result",
		},
		[]string{"result"},
	)

	DroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcast_dropped_total",
			Help: "Total number of notifications dropped because the queue was full",
		},
	)

	EvictedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcast_evicted_total",
			Help: "Total number of observers removed by the hub by reason",
		},
		[]string{"reason"},
	)
)
