package observability

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics stores Prometheus collectors used by API and import flows.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	rowsImportedTotal   *prometheus.CounterVec
	rowsRejectedTotal   *prometheus.CounterVec
	batchesTotal        *prometheus.CounterVec
	batchDuration       *prometheus.HistogramVec
	batchesInflight     *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "feed_engine",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests processed by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "feed_engine",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds by method and path.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		rowsImportedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "feed_engine",
				Name:      "rows_imported_total",
				Help:      "Total number of rows persisted by committed batches.",
			},
			[]string{"target"},
		),
		rowsRejectedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "feed_engine",
				Name:      "rows_rejected_total",
				Help:      "Total number of rows rejected during batch processing.",
			},
			[]string{"target"},
		),
		batchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "feed_engine",
				Name:      "batches_total",
				Help:      "Total number of finished batches grouped by terminal status.",
			},
			[]string{"target", "status"},
		),
		batchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "feed_engine",
				Name:      "batch_duration_seconds",
				Help:      "End-to-end batch duration in seconds grouped by target.",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
			},
			[]string{"target"},
		),
		batchesInflight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "feed_engine",
				Name:      "batches_inflight",
				Help:      "Current number of in-flight batches grouped by target.",
			},
			[]string{"target"},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.rowsImportedTotal,
		m.rowsRejectedTotal,
		m.batchesTotal,
		m.batchDuration,
		m.batchesInflight,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil || m.registry == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) HTTPMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := routePath(c)
		// Avoid self-scrape noise for request counters.
		if path == "/metrics" {
			return err
		}

		m.recordHTTPRequest(c.Method(), path, statusFromResult(c, err), time.Since(start))
		return err
	}
}

func (m *Metrics) AddRowsImported(target string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.rowsImportedTotal.WithLabelValues(normalizeTarget(target)).Add(float64(count))
}

func (m *Metrics) AddRowsRejected(target string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.rowsRejectedTotal.WithLabelValues(normalizeTarget(target)).Add(float64(count))
}

func (m *Metrics) IncBatch(target string, status string) {
	if m == nil {
		return
	}
	statusLabel := strings.TrimSpace(strings.ToLower(status))
	if statusLabel == "" {
		statusLabel = "unknown"
	}
	m.batchesTotal.WithLabelValues(normalizeTarget(target), statusLabel).Inc()
}

func (m *Metrics) ObserveBatchDuration(target string, duration time.Duration) {
	if m == nil {
		return
	}
	seconds := duration.Seconds()
	if seconds < 0 {
		seconds = 0
	}
	m.batchDuration.WithLabelValues(normalizeTarget(target)).Observe(seconds)
}

func (m *Metrics) IncBatchInFlight(target string) {
	if m == nil {
		return
	}
	m.batchesInflight.WithLabelValues(normalizeTarget(target)).Inc()
}

func (m *Metrics) DecBatchInFlight(target string) {
	if m == nil {
		return
	}
	m.batchesInflight.WithLabelValues(normalizeTarget(target)).Dec()
}

func (m *Metrics) recordHTTPRequest(method string, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}

	methodLabel := strings.ToUpper(strings.TrimSpace(method))
	if methodLabel == "" {
		methodLabel = "UNKNOWN"
	}
	pathLabel := strings.TrimSpace(path)
	if pathLabel == "" {
		pathLabel = "unmatched"
	}

	m.httpRequestsTotal.WithLabelValues(methodLabel, pathLabel, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(methodLabel, pathLabel).Observe(duration.Seconds())
}

func routePath(c *fiber.Ctx) string {
	if c == nil {
		return "unmatched"
	}

	if route := c.Route(); route != nil {
		if path := strings.TrimSpace(route.Path); path != "" {
			return path
		}
	}
	return "unmatched"
}

func statusFromResult(c *fiber.Ctx, err error) int {
	if err != nil {
		if fiberErr, ok := err.(*fiber.Error); ok {
			return fiberErr.Code
		}
		return fiber.StatusInternalServerError
	}

	if c == nil {
		return fiber.StatusOK
	}

	status := c.Response().StatusCode()
	if status == 0 {
		return fiber.StatusOK
	}
	return status
}

func normalizeTarget(target string) string {
	normalized := strings.ToLower(strings.TrimSpace(target))
	if normalized == "" {
		return "unknown"
	}
	return normalized
}
