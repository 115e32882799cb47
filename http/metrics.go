package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics exported by the API server.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	ExtractionsTotal *prometheus.CounterVec
}

// NewMetrics registers the server metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pipgrab_http_requests_total",
			Help: "The total number of HTTP requests served",
		}, []string{"route", "code"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pipgrab_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		ExtractionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pipgrab_extractions_total",
			Help: "The total number of extraction requests by outcome",
		}, []string{"outcome"}), // "ok", "invalid", "fetch", "parse", "internal"
	}
}
