package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP collectors of one server.
type Metrics struct {
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	active        prometheus.Gauge
	sharedDetails prometheus.Counter
}

// NewMetrics registers the server collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "impact_http_requests_total",
			Help: "Number of HTTP requests by route, method and status code",
		}, []string{"route", "method", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name: "impact_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
			Buckets: []float64{
				0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
			},
		}, []string{"route", "method"}),
		active: factory.NewGauge(prometheus.GaugeOpts{
			Name: "impact_http_active_requests",
			Help: "Number of HTTP requests in flight",
		}),
		sharedDetails: factory.NewCounter(prometheus.CounterOpts{
			Name: "impact_author_details_shared_total",
			Help: "Number of author detail lookups answered by a concurrent identical lookup",
		}),
	}
}

// RecordRequest records one finished request.
func (m *Metrics) RecordRequest(route, method, status string, d time.Duration) {
	m.requests.WithLabelValues(route, method, status).Inc()
	m.duration.WithLabelValues(route, method).Observe(d.Seconds())
}
