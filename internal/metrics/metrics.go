package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mihman",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	reservationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mihman",
			Name:      "reservations_created_total",
			Help:      "Successfully created reservations.",
		},
	)

	reservationConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mihman",
			Name:      "reservation_conflicts_total",
			Help:      "Creation attempts rejected by the conflict check.",
		},
	)

	cancellations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mihman",
			Name:      "cancellations_total",
			Help:      "Cancellations by refund tier (full, half, none).",
		},
		[]string{"tier"},
	)

	refundsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mihman",
			Name:      "refunds_processed_total",
			Help:      "Approved refunds.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			reservationsCreated,
			reservationConflicts,
			cancellations,
			refundsProcessed,
		)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func IncReservationCreated() { reservationsCreated.Inc() }

func IncReservationConflict() { reservationConflicts.Inc() }

// IncCancellation records a cancellation with its refund tier label.
func IncCancellation(tier string) {
	cancellations.WithLabelValues(tier).Inc()
}

func IncRefundProcessed() { refundsProcessed.Inc() }
