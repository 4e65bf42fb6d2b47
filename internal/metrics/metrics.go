// Package metrics exposes Prometheus instrumentation for model calls,
// summaries, WebSocket connections and HTTP requests.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trxu05/mock-interview-chatbot/internal/model"
)

const namespace = "mockinterview"

// Outcome labels.
const (
	OutcomeOK            = "ok"
	OutcomeConfigError   = "config_error"
	OutcomeExternalError = "external_error"
	OutcomeError         = "error"
)

// Metrics holds every collector, registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	ModelCalls        *prometheus.CounterVec
	ModelCallDuration *prometheus.HistogramVec
	Summaries         *prometheus.CounterVec
	SummaryDuration   prometheus.Histogram
	WSConnections     prometheus.Gauge
	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
}

// New creates the collectors on a fresh registry together with the Go runtime
// and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ModelCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_calls_total",
			Help:      "Total number of language-model calls by purpose and outcome",
		}, []string{"purpose", "outcome"}),
		ModelCallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "model_call_duration_seconds",
			Help:      "Duration of language-model calls in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}, []string{"purpose"}),
		Summaries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summaries_total",
			Help:      "Total number of interview summaries by outcome",
		}, []string{"outcome"}),
		SummaryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "summary_duration_seconds",
			Help:      "Time taken to assemble an interview summary",
			Buckets:   []float64{0.5, 1, 2, 4, 8, 16, 32, 64},
		}),
		WSConnections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_connections",
			Help:      "Current number of open WebSocket connections",
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests received",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveSummary records one summary attempt.
func (m *Metrics) ObserveSummary(err error, elapsed time.Duration) {
	m.Summaries.WithLabelValues(Outcome(err)).Inc()
	if err == nil {
		m.SummaryDuration.Observe(elapsed.Seconds())
	}
}

// Outcome maps an error to its outcome label.
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	var cfgErr *model.ConfigurationError
	if errors.As(err, &cfgErr) {
		return OutcomeConfigError
	}
	var extErr *model.ExternalServiceError
	if errors.As(err, &extErr) {
		return OutcomeExternalError
	}
	return OutcomeError
}
