package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	LMSCalls            *prometheus.CounterVec
	LMSCallDuration     *prometheus.HistogramVec
	LinkAttempts        *prometheus.CounterVec
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "moodle_bridge_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "moodle_bridge_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		LMSCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "moodle_bridge_lms_calls_total",
			Help: "Total number of Moodle web-service calls by function and outcome",
		}, []string{"function", "outcome"}),
		LMSCallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "moodle_bridge_lms_call_duration_seconds",
			Help:    "Latency of Moodle web-service calls",
			Buckets: prometheus.DefBuckets,
		}, []string{"function"}),
		LinkAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "moodle_bridge_link_attempts_total",
			Help: "Total number of account link attempts by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveHTTPRequest records one served request. path is the route pattern,
// not the raw URL, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveLMSCall records one outbound call.
func (m *Metrics) ObserveLMSCall(function, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.LMSCalls.WithLabelValues(function, outcome).Inc()
	m.LMSCallDuration.WithLabelValues(function).Observe(duration.Seconds())
}

// IncrementLinkAttempts counts a link attempt with the given outcome.
func (m *Metrics) IncrementLinkAttempts(outcome string) {
	if m == nil {
		return
	}
	m.LinkAttempts.WithLabelValues(outcome).Inc()
}
