package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	searchTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "estatehub",
			Name:      "search_total",
			Help:      "Count of availability searches served.",
		},
	)

	searchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "estatehub",
			Name:      "search_results",
			Help:      "Number of properties returned per search.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "estatehub",
			Name:      "booking_created_total",
			Help:      "Count of booking attempts by status.",
		},
		[]string{"status"},
	)

	bookingCanceled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "estatehub",
			Name:      "booking_canceled_total",
			Help:      "Count of canceled bookings by actor role.",
		},
		[]string{"role"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(searchTotal, searchResults, bookingCreated, bookingCanceled)
	})
}

func ObserveSearch(results int) {
	searchTotal.Inc()
	searchResults.Observe(float64(results))
}

func IncBookingCreated(status string) {
	bookingCreated.WithLabelValues(status).Inc()
}

func IncBookingCanceled(role string) {
	bookingCanceled.WithLabelValues(role).Inc()
}
