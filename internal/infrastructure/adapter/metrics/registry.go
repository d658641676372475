package metrics

import (
	"net/http"
	"strconv"
	"time"

	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns the Prometheus collectors exported on the metrics endpoint
type Registry struct {
	namespace string
	registry  *prometheus.Registry

	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec

	scanAttempts   *prometheus.CounterVec
	gamesCompleted prometheus.Counter
	pointsAwarded  prometheus.Counter
	gamesRejected  *prometheus.CounterVec
}

var _ coreport.RewardMetrics = (*Registry)(nil)

// NewRegistry creates a registry with the HTTP, reward and runtime collectors
func NewRegistry(namespace string) *Registry {
	if namespace == "" {
		namespace = "qr_rewards"
	}

	r := &Registry{
		namespace: namespace,
		registry:  prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		}, []string{"route", "method", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		scanAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reward",
			Name:      "scan_attempts_total",
			Help:      "Scan attempts registered, by outcome.",
		}, []string{"outcome"}),
		gamesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reward",
			Name:      "games_completed_total",
			Help:      "Games completed and recorded as scans.",
		}),
		pointsAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reward",
			Name:      "points_awarded_total",
			Help:      "Points credited to users for completed games.",
		}),
		gamesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reward",
			Name:      "games_rejected_total",
			Help:      "Game completions refused, by API error code.",
		}, []string{"code"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.requests,
		r.durations,
		r.scanAttempts,
		r.gamesCompleted,
		r.pointsAwarded,
		r.gamesRejected,
	)
	return r
}

// Namespace returns the metric name prefix
func (r *Registry) Namespace() string {
	return r.namespace
}

// Registerer exposes the underlying registry for other collectors
func (r *Registry) Registerer() prometheus.Registerer {
	return r.registry
}

// Gatherer exposes the underlying registry for scraping and tests
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request
func (r *Registry) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	r.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.durations.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ScanAttempt counts a registered scan by outcome
func (r *Registry) ScanAttempt(outcome string) {
	r.scanAttempts.WithLabelValues(outcome).Inc()
}

// GameCompleted counts a finished game and the points it awarded
func (r *Registry) GameCompleted(points int64) {
	r.gamesCompleted.Inc()
	if points > 0 {
		r.pointsAwarded.Add(float64(points))
	}
}

// GameRejected counts a refused game completion
func (r *Registry) GameRejected(errorCode int) {
	r.gamesRejected.WithLabelValues(strconv.Itoa(errorCode)).Inc()
}
