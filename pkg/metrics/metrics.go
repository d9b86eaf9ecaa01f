package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the service
type Metrics struct {
	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight *prometheus.GaugeVec
	DBConnPoolStats  *prometheus.GaugeVec
}

// NewMetrics creates a new metrics instance
func NewMetrics(serviceName string) *Metrics {
	return &Metrics{
		RequestCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "qna",
				Subsystem: serviceName,
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "qna",
				Subsystem: serviceName,
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		RequestsInFlight: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "qna",
				Subsystem: serviceName,
				Name:      "requests_in_flight",
				Help:      "Number of requests currently being processed",
			},
			[]string{"path"},
		),
		DBConnPoolStats: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "qna",
				Subsystem: serviceName,
				Name:      "db_connection_pool",
				Help:      "Database connection pool statistics",
			},
			[]string{"stat"}, // open, in_use, idle, wait_count
		),
	}
}

// statusRecorder captures the status code written by the handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// HTTPMiddleware returns an HTTP middleware recording request metrics.
// The path label uses the route prefix rather than the raw URL so entity
// ids do not blow up label cardinality.
func HTTPMiddleware(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := routeLabel(r.URL.Path)

			m.RequestsInFlight.WithLabelValues(path).Inc()
			defer m.RequestsInFlight.WithLabelValues(path).Dec()

			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			m.RequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
			m.RequestCounter.WithLabelValues(r.Method, path, strconv.Itoa(recorder.status)).Inc()
		})
	}
}

func routeLabel(path string) string {
	if len(path) >= len("/questions") && path[:len("/questions")] == "/questions" {
		return "/questions"
	}
	if len(path) >= len("/answers") && path[:len("/answers")] == "/answers" {
		return "/answers"
	}
	return "other"
}

// CollectPoolStats periodically exports connection pool statistics.
// It blocks, so run it in its own goroutine; it returns when the
// stop channel is closed.
func CollectPoolStats(m *Metrics, database *sql.DB, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			stats := database.Stats()
			m.DBConnPoolStats.WithLabelValues("open").Set(float64(stats.OpenConnections))
			m.DBConnPoolStats.WithLabelValues("in_use").Set(float64(stats.InUse))
			m.DBConnPoolStats.WithLabelValues("idle").Set(float64(stats.Idle))
			m.DBConnPoolStats.WithLabelValues("wait_count").Set(float64(stats.WaitCount))
		case <-stop:
			return
		}
	}
}
