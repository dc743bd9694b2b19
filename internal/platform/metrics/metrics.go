// Package metrics exposes Prometheus collectors for upstream calls,
// leaderboard builds and inbound HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "segment_leaderboard"

// Outcome labels for upstream calls.
const (
	OutcomeSuccess        = "success"
	OutcomeRejected       = "rejected"
	OutcomeUpstreamError  = "upstream_error"
	OutcomeCircuitOpen    = "circuit_open"
	OutcomeMalformedReply = "malformed"
)

// Metrics is safe for concurrent use. A nil *Metrics discards observations.
type Metrics struct {
	registry *prometheus.Registry

	upstreamRequests  *prometheus.CounterVec
	upstreamLatency   *prometheus.HistogramVec
	leaderboardBuilds *prometheus.CounterVec
	leaderboardSize   prometheus.Histogram
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

type Option func(*options)

type options struct {
	namespace      string
	latencyBuckets []float64
	runtime        bool
}

func WithNamespace(namespace string) Option {
	return func(o *options) {
		if namespace != "" {
			o.namespace = namespace
		}
	}
}

func WithLatencyBuckets(buckets []float64) Option {
	return func(o *options) {
		if len(buckets) > 0 {
			o.latencyBuckets = buckets
		}
	}
}

// WithRuntimeCollectors registers the Go runtime and process collectors.
func WithRuntimeCollectors(enabled bool) Option {
	return func(o *options) {
		o.runtime = enabled
	}
}

func New(opts ...Option) *Metrics {
	o := options{
		namespace:      defaultNamespace,
		latencyBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(&o)
	}

	registry := prometheus.NewRegistry()
	if o.runtime {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	auto := promauto.With(registry)

	return &Metrics{
		registry: registry,
		upstreamRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Outbound segment API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		upstreamLatency: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Outbound segment API latency by endpoint.",
			Buckets:   o.latencyBuckets,
		}, []string{"endpoint"}),
		leaderboardBuilds: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "leaderboard",
			Name:      "builds_total",
			Help:      "Leaderboard builds by result.",
		}, []string{"result"}),
		leaderboardSize: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: "leaderboard",
			Name:      "athletes",
			Help:      "Athletes per leaderboard build.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32},
		}),
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Inbound HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Inbound HTTP latency by route.",
			Buckets:   o.latencyBuckets,
		}, []string{"route"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return prometheus.NewRegistry()
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveUpstream(endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	m.upstreamLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveLeaderboardBuild(result string, athletes int) {
	if m == nil {
		return
	}
	m.leaderboardBuilds.WithLabelValues(result).Inc()
	m.leaderboardSize.Observe(float64(athletes))
}

func (m *Metrics) ObserveHTTPRequest(method, route string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
