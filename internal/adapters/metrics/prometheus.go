// Package metrics provides Prometheus metrics collection.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements the MetricsCollector port using Prometheus.
type Collector struct {
	candidatesTotal     *prometheus.CounterVec
	splitsTotal         *prometheus.CounterVec
	quadrantsTotal      *prometheus.CounterVec
	probesTotal         *prometheus.CounterVec
	fetchesTotal        *prometheus.CounterVec
	splitDuration       prometheus.Histogram
	acquireDuration     *prometheus.HistogramVec
	watchedDirs         prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewCollector creates a new Prometheus metrics collector.
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "quadra"
	}

	return &Collector{
		candidatesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "candidates_total",
				Help:      "Total number of qualified candidates by input kind",
			},
			[]string{"kind"},
		),

		splitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "splits_total",
				Help:      "Total number of processed candidates by outcome",
			},
			[]string{"outcome"},
		),

		quadrantsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "quadrants_total",
				Help:      "Total number of quadrant files by write result",
			},
			[]string{"result"},
		),

		probesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "probes_total",
				Help:      "Total number of remote metadata probes",
			},
			[]string{"scheme", "status"},
		),

		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fetches_total",
				Help:      "Total number of remote content fetches",
			},
			[]string{"scheme", "status"},
		),

		splitDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "split_duration_seconds",
				Help:      "Candidate split duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),

		acquireDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "acquire_duration_seconds",
				Help:      "Image acquisition duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"origin"},
		),

		watchedDirs: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "watched_dirs",
				Help:      "Number of directories under watch",
			},
		),

		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// IncCandidates counts a qualified candidate by input kind.
func (c *Collector) IncCandidates(kind string) {
	c.candidatesTotal.WithLabelValues(kind).Inc()
}

// IncSplits counts a finished candidate by outcome.
func (c *Collector) IncSplits(outcome string) {
	c.splitsTotal.WithLabelValues(outcome).Inc()
}

// AddQuadrants counts quadrant files by write result.
func (c *Collector) AddQuadrants(result string, n int) {
	if n == 0 {
		return
	}
	c.quadrantsTotal.WithLabelValues(result).Add(float64(n))
}

// IncProbes counts a remote metadata probe.
func (c *Collector) IncProbes(scheme string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	c.probesTotal.WithLabelValues(scheme, status).Inc()
}

// IncFetches counts a remote content fetch.
func (c *Collector) IncFetches(scheme string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	c.fetchesTotal.WithLabelValues(scheme, status).Inc()
}

// ObserveSplitDuration records the wall time of one candidate split.
func (c *Collector) ObserveSplitDuration(duration time.Duration) {
	c.splitDuration.Observe(duration.Seconds())
}

// ObserveAcquireDuration records acquisition time by origin.
func (c *Collector) ObserveAcquireDuration(origin string, duration time.Duration) {
	c.acquireDuration.WithLabelValues(origin).Observe(duration.Seconds())
}

// SetWatchedDirs sets the number of directories under watch.
func (c *Collector) SetWatchedDirs(count int) {
	c.watchedDirs.Set(float64(count))
}

// IncHTTPRequests increments the HTTP request counter.
func (c *Collector) IncHTTPRequests(method, path, status string) {
	c.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
}

// ObserveHTTPDuration records HTTP request duration.
func (c *Collector) ObserveHTTPDuration(method, path string, duration time.Duration) {
	c.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns HTTP middleware for metrics collection.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		wrapped := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		path := normalizePath(r.URL.Path)
		status := statusToString(wrapped.statusCode)

		c.IncHTTPRequests(r.Method, path, status)
		c.ObserveHTTPDuration(r.Method, path, duration)
	})
}

type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// normalizePath normalizes the URL path for metrics.
func normalizePath(path string) string {
	// Replace dynamic segments with placeholders
	// This prevents high cardinality metrics
	switch {
	case len(path) > 20:
		return path[:20] + "..."
	default:
		return path
	}
}

// statusToString converts HTTP status code to string category.
func statusToString(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
