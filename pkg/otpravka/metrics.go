package otpravka

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for client calls.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Errors          *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg registers with the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "otpravka_client",
				Name:      "requests_total",
				Help:      "Requests sent to the otpravka API by operation and HTTP status.",
			},
			[]string{"operation", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "otpravka_client",
				Name:      "request_duration_seconds",
				Help:      "Round-trip duration of otpravka API requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "otpravka_client",
				Name:      "errors_total",
				Help:      "Failed client operations by error kind.",
			},
			[]string{"operation", "kind"},
		),
	}
}

func (m *Metrics) observe(operation string, status int, d time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status != 0 {
		label = strconv.Itoa(status)
	}
	m.RequestsTotal.WithLabelValues(operation, label).Inc()
	m.RequestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *Metrics) observeError(operation string, kind ErrorKind) {
	if m == nil {
		return
	}
	m.Errors.WithLabelValues(operation, string(kind)).Inc()
}
