// Package metrics holds the payment domain Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	paymentsInitiated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_initiated_total",
			Help: "Total number of payments created in pending state",
		},
	)

	paymentTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_transitions_total",
			Help: "Payment status transitions out of pending",
		},
		[]string{"status"},
	)

	paymentIPN = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_ipn_total",
			Help: "Gateway notifications by processing outcome",
		},
		[]string{"outcome"},
	)

	gatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "Payment gateway call latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"op", "result"},
	)
)

// PaymentInitiated increments the initiated counter
func PaymentInitiated() {
	paymentsInitiated.Inc()
}

// PaymentTransitioned records a move to a terminal status
func PaymentTransitioned(status string) {
	paymentTransitions.WithLabelValues(status).Inc()
}

// NotificationHandled records how a gateway notification was processed
func NotificationHandled(outcome string) {
	paymentIPN.WithLabelValues(outcome).Inc()
}

// ObserveGateway records one gateway call
func ObserveGateway(op string, started time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	gatewayRequestDuration.WithLabelValues(op, result).Observe(time.Since(started).Seconds())
}
