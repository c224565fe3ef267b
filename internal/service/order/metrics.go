package order

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of created orders",
		},
	)

	StatusTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_transitions_total",
			Help: "Total number of committed order status transitions",
		},
		[]string{"from", "to"},
	)

	StatusUpdateRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_update_rejected_total",
			Help: "Total number of rejected status updates by reason",
		},
		[]string{"reason"},
	)
)
