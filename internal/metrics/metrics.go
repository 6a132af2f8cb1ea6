// Package metrics exposes Prometheus counters for parsing and HTTP traffic
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tordrt/schemamap/internal/schema"
)

// Metrics holds the collectors of one server. Each instance owns its registry.
type Metrics struct {
	registry *prometheus.Registry

	ParseTotal         *prometheus.CounterVec
	ParseDuration      prometheus.Histogram
	ParsedTables       prometheus.Counter
	ParseDiagnostics   prometheus.Counter
	HTTPRequestsTotal  *prometheus.CounterVec
	HTTPRequestSeconds *prometheus.HistogramVec
}

// New registers the schemamap collectors plus the Go and process collectors
// on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ParseTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schemamap_parse_total",
				Help: "Total number of parse requests",
			},
			[]string{"status"},
		),
		ParseDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "schemamap_parse_duration_seconds",
				Help:    "Time spent parsing DDL in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		ParsedTables: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "schemamap_parsed_tables_total",
				Help: "Total number of tables extracted",
			},
		),
		ParseDiagnostics: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "schemamap_parse_diagnostics_total",
				Help: "Total number of parse diagnostics reported",
			},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schemamap_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "schemamap_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// ObserveParse records one parse. A result with tables and no diagnostics
// counts as "ok", tables with diagnostics as "partial", no tables as "empty".
func (m *Metrics) ObserveParse(r schema.ParseResult, duration time.Duration) {
	if m == nil {
		return
	}

	status := "ok"
	switch {
	case len(r.Tables) == 0:
		status = "empty"
	case len(r.Errors) > 0:
		status = "partial"
	}

	m.ParseTotal.WithLabelValues(status).Inc()
	m.ParseDuration.Observe(duration.Seconds())
	m.ParsedTables.Add(float64(len(r.Tables)))
	m.ParseDiagnostics.Add(float64(len(r.Errors)))
}

// Middleware is a gin middleware that records HTTP metrics
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		m.HTTPRequestSeconds.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
