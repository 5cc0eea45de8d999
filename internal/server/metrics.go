package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "bigcalc"

// Metrics holds the Prometheus collectors of one server. Each Metrics has
// its own registry so that servers and tests do not share state.
type Metrics struct {
	registry       *prometheus.Registry
	handler        http.Handler
	requestsTotal  *prometheus.CounterVec
	activeRequests prometheus.Gauge
	latency        *prometheus.HistogramVec
	evaluations    *prometheus.CounterVec
	resultBits     prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with the Go runtime
// and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "requests_total",
			Help:      "HTTP requests by path and status code.",
		}, []string{"path", "code"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "active_requests",
			Help:      "HTTP requests being served.",
		}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"path"}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "evaluations_total",
			Help:      "Evaluations by operation, engine and outcome.",
		}, []string{"op", "engine", "outcome"}),
		resultBits: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "result_bits",
			Help:      "Bit length of successful results.",
			Buckets:   prometheus.ExponentialBuckets(64, 8, 8),
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal,
		m.activeRequests,
		m.latency,
		m.evaluations,
		m.resultBits,
	)
	m.requestsTotal.WithLabelValues("/eval", "200")
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests marks a request as started.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests marks a request as finished.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// ObserveRequest records a finished request.
func (m *Metrics) ObserveRequest(path string, code int, d time.Duration) {
	m.requestsTotal.WithLabelValues(path, strconv.Itoa(code)).Inc()
	m.latency.WithLabelValues(path).Observe(d.Seconds())
}

// ObserveEvaluation records one evaluation. bits is ignored on failure.
func (m *Metrics) ObserveEvaluation(op, engine string, err error, bits int) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.evaluations.WithLabelValues(op, engine, outcome).Inc()
	if err == nil {
		m.resultBits.Observe(float64(bits))
	}
}

// WritePrometheus serves the metrics in the Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
