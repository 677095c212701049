// Package monitoring exposes Prometheus metrics for the storefront.
// Metrics are registered on the default registry via promauto and
// served by the /metrics route.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	seatToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_seat_toggles_total",
			Help: "Seat toggle requests by outcome",
		},
		[]string{"outcome"},
	)

	ordersPlaced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_orders_placed_total",
			Help: "Orders handed off to checkout",
		},
	)

	orderTotal = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storefront_order_grand_total",
			Help:    "Grand total distribution of placed orders",
			Buckets: prometheus.ExponentialBuckets(10, 2, 12),
		},
	)
)

// Toggle outcomes recorded by ObserveSeatToggle.
const (
	ToggleSelected   = "selected"
	ToggleDeselected = "deselected"
	ToggleRejected   = "rejected"
)

// ObserveSeatToggle counts one seat toggle request with its outcome.
func ObserveSeatToggle(outcome string) {
	seatToggles.WithLabelValues(outcome).Inc()
}

// ObserveOrderPlaced counts one placed order and records its grand
// total (as a float purely for bucketing; exact amounts live in the
// handoff event).
func ObserveOrderPlaced(grandTotal float64) {
	ordersPlaced.Inc()
	orderTotal.Observe(grandTotal)
}
