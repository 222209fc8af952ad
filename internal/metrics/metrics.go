package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

type MetricsService interface {
	GetRegistry() *prometheus.Registry
	IncHorizonRequests(endpoint string)
	ObserveHorizonRequestDuration(endpoint string, duration float64)
	IncHorizonResponses(endpoint string, statusCode int)
	IncHorizonRequestFailure(endpoint, errorType string)
	IncDecodeFailure(resource string)
	ObserveRateLimitWait(duration float64)
	SetAccountSequence(account string, sequence float64)
	IncWatchPolls(account string, success bool)
}

// metricsService holds the collectors for the Horizon client
type metricsService struct {
	registry *prometheus.Registry

	// Transport Metrics
	requestsTotal    *prometheus.CounterVec
	requestsDuration *prometheus.SummaryVec
	responsesTotal   *prometheus.CounterVec
	requestFailures  *prometheus.CounterVec
	decodeFailures   *prometheus.CounterVec
	rateLimitWait    prometheus.Histogram

	// Watch Metrics
	accountSequence *prometheus.GaugeVec
	watchPolls      *prometheus.CounterVec
}

// NewMetricsService creates a new metrics service with all metrics registered
func NewMetricsService() MetricsService {
	m := &metricsService{
		registry: prometheus.NewRegistry(),
	}

	m.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horizon_requests_total",
			Help: "Total number of requests sent to Horizon",
		},
		[]string{"endpoint"},
	)
	m.requestsDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "horizon_requests_duration_seconds",
			Help:       "Duration of Horizon requests in seconds",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"endpoint"},
	)
	m.responsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horizon_responses_total",
			Help: "Total number of Horizon responses by status code",
		},
		[]string{"endpoint", "status"},
	)
	m.requestFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horizon_request_failures_total",
			Help: "Total number of failed Horizon requests by error type",
		},
		[]string{"endpoint", "error_type"},
	)
	m.decodeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horizon_decode_failures_total",
			Help: "Total number of responses that failed resource validation",
		},
		[]string{"resource"},
	)
	m.rateLimitWait = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "horizon_rate_limit_wait_seconds",
			Help:    "Time spent waiting on the client-side rate limiter",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
	)
	m.accountSequence = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "horizon_account_sequence",
			Help: "Last sequence number observed for a watched account",
		},
		[]string{"account"},
	)
	m.watchPolls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horizon_watch_polls_total",
			Help: "Total number of account polls by outcome",
		},
		[]string{"account", "success"},
	)

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestsDuration,
		m.responsesTotal,
		m.requestFailures,
		m.decodeFailures,
		m.rateLimitWait,
		m.accountSequence,
		m.watchPolls,
	)

	return m
}

func (m *metricsService) GetRegistry() *prometheus.Registry {
	return m.registry
}

// Transport Metrics
func (m *metricsService) IncHorizonRequests(endpoint string) {
	m.requestsTotal.WithLabelValues(endpoint).Inc()
}

func (m *metricsService) ObserveHorizonRequestDuration(endpoint string, duration float64) {
	m.requestsDuration.WithLabelValues(endpoint).Observe(duration)
}

func (m *metricsService) IncHorizonResponses(endpoint string, statusCode int) {
	m.responsesTotal.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Inc()
}

func (m *metricsService) IncHorizonRequestFailure(endpoint, errorType string) {
	m.requestFailures.WithLabelValues(endpoint, errorType).Inc()
}

func (m *metricsService) IncDecodeFailure(resource string) {
	m.decodeFailures.WithLabelValues(resource).Inc()
}

func (m *metricsService) ObserveRateLimitWait(duration float64) {
	m.rateLimitWait.Observe(duration)
}

// Watch Metrics
func (m *metricsService) SetAccountSequence(account string, sequence float64) {
	m.accountSequence.WithLabelValues(account).Set(sequence)
}

func (m *metricsService) IncWatchPolls(account string, success bool) {
	m.watchPolls.WithLabelValues(account, strconv.FormatBool(success)).Inc()
}
