package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
)

// MockMetricsService is a mock implementation of MetricsService
type MockMetricsService struct {
	mock.Mock
}

var _ MetricsService = (*MockMetricsService)(nil)

// NewMockMetricsService creates a new mock metrics service
func NewMockMetricsService() *MockMetricsService {
	return &MockMetricsService{}
}

func (m *MockMetricsService) GetRegistry() *prometheus.Registry {
	args := m.Called()
	return args.Get(0).(*prometheus.Registry)
}

func (m *MockMetricsService) IncHorizonRequests(endpoint string) {
	m.Called(endpoint)
}

func (m *MockMetricsService) ObserveHorizonRequestDuration(endpoint string, duration float64) {
	m.Called(endpoint, duration)
}

func (m *MockMetricsService) IncHorizonResponses(endpoint string, statusCode int) {
	m.Called(endpoint, statusCode)
}

func (m *MockMetricsService) IncHorizonRequestFailure(endpoint, errorType string) {
	m.Called(endpoint, errorType)
}

func (m *MockMetricsService) IncDecodeFailure(resource string) {
	m.Called(resource)
}

func (m *MockMetricsService) ObserveRateLimitWait(duration float64) {
	m.Called(duration)
}

func (m *MockMetricsService) SetAccountSequence(account string, sequence float64) {
	m.Called(account, sequence)
}

func (m *MockMetricsService) IncWatchPolls(account string, success bool) {
	m.Called(account, success)
}
