// Package metrics owns the Prometheus collectors exposed on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Metrics groups the collectors on a private registry so tests can build as
// many instances as they like.
type Metrics struct {
	registry *prometheus.Registry

	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	pageSize   *prometheus.HistogramVec
	pastLast   *prometheus.CounterVec
	schemesSet prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		pageSize: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "page_size",
			Help:      "Effective page size of list responses.",
			Buckets:   []float64{1, 5, 10, 20, 50, 100, 250, 500},
		}, []string{"resource"}),
		pastLast: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "pages_past_end_total",
			Help:      "List requests whose page index was beyond the last page.",
		}, []string{"resource"}),
		schemesSet: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "schemes",
			Help:      "Number of registered external sign-in schemes.",
		}),
	}
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	m.requests.WithLabelValues(method, route, status).Inc()
	m.duration.WithLabelValues(method, route).Observe(seconds)
}

// ObservePage records one list response. pastEnd is true when the requested
// index had no items although the collection itself may not be empty.
func (m *Metrics) ObservePage(resource string, pageSize int, pastEnd bool) {
	m.pageSize.WithLabelValues(resource).Observe(float64(pageSize))
	if pastEnd {
		m.pastLast.WithLabelValues(resource).Inc()
	}
}

func (m *Metrics) SetSchemes(n int) { m.schemesSet.Set(float64(n)) }

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
