// Package metrics holds the prometheus collectors of the dispatch service.
// Collectors are registered in the default registry and served on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersAssignedTotal counts orders bound to a courier by assign requests.
	OrdersAssignedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dispatch",
		Subsystem: "orders",
		Name:      "assigned_total",
		Help:      "Orders assigned to couriers",
	})

	// OrdersUnassignedTotal counts assignments released after a courier profile change.
	OrdersUnassignedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dispatch",
		Subsystem: "orders",
		Name:      "unassigned_total",
		Help:      "Orders released because the courier can no longer take them",
	})

	// OrdersCompletedTotal counts first-time completions; repeated completions are not counted.
	OrdersCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dispatch",
		Subsystem: "orders",
		Name:      "completed_total",
		Help:      "Orders completed by couriers",
	})

	// BatchRejectedTotal counts batch imports rejected by validation.
	BatchRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dispatch",
		Subsystem: "batch",
		Name:      "rejected_total",
		Help:      "Batch imports rejected because at least one item was invalid",
	}, []string{"entity"}) // couriers / orders

	// RequestDuration observes HTTP request latency by status code.
	RequestDuration = promauto.NewSummaryVec(prometheus.SummaryOpts{
		Namespace:  "dispatch",
		Subsystem:  "http",
		Name:       "request_duration_seconds",
		Help:       "HTTP request latency",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	}, []string{"status"})
)

// ObserveRequest records the latency of a served request.
func ObserveRequest(d time.Duration, status int) {
	RequestDuration.WithLabelValues(strconv.Itoa(status)).Observe(d.Seconds())
}
