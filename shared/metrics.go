package shared

import (
	"sync"
	"time"
)

// ServiceMetrics tracks performance and success metrics for services
type ServiceMetrics struct {
	serviceName           string
	totalRequests         int64
	successfulRequests    int64
	failedRequests        int64
	totalProcessingTime   time.Duration
	averageProcessingTime time.Duration
	lastUpdated           time.Time
	customCounters        map[string]int64
	mutex                 sync.RWMutex
}

// MetricsSnapshot is a point-in-time copy of service metrics
type MetricsSnapshot struct {
	ServiceName           string           `json:"service_name"`
	TotalRequests         int64            `json:"total_requests"`
	SuccessfulRequests    int64            `json:"successful_requests"`
	FailedRequests        int64            `json:"failed_requests"`
	AverageProcessingTime time.Duration    `json:"average_processing_time"`
	LastUpdated           time.Time        `json:"last_updated"`
	CustomCounters        map[string]int64 `json:"custom_counters"`
}

// NewServiceMetrics creates a new metrics tracker for a service
func NewServiceMetrics(serviceName string) *ServiceMetrics {
	return &ServiceMetrics{
		serviceName:    serviceName,
		lastUpdated:    time.Now(),
		customCounters: make(map[string]int64),
	}
}

// RecordRequest records a request with its success status and processing time
func (m *ServiceMetrics) RecordRequest(success bool, processingTime time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.totalRequests++
	m.totalProcessingTime += processingTime
	m.averageProcessingTime = time.Duration(int64(m.totalProcessingTime) / m.totalRequests)

	if success {
		m.successfulRequests++
	} else {
		m.failedRequests++
	}

	m.lastUpdated = time.Now()
}

// GetSuccessRate returns the success rate as a percentage
func (m *ServiceMetrics) GetSuccessRate() float64 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.totalRequests == 0 {
		return 0.0
	}

	return float64(m.successfulRequests) / float64(m.totalRequests) * 100.0
}

// IncrementCounter increments a named counter metric
func (m *ServiceMetrics) IncrementCounter(key string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.customCounters[key]++
	m.lastUpdated = time.Now()
}

// GetCounter returns the value of a named counter metric
func (m *ServiceMetrics) GetCounter(key string) int64 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.customCounters[key]
}

// GetSnapshot returns a thread-safe snapshot of current metrics
func (m *ServiceMetrics) GetSnapshot() MetricsSnapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	counters := make(map[string]int64, len(m.customCounters))
	for key, value := range m.customCounters {
		counters[key] = value
	}

	return MetricsSnapshot{
		ServiceName:           m.serviceName,
		TotalRequests:         m.totalRequests,
		SuccessfulRequests:    m.successfulRequests,
		FailedRequests:        m.failedRequests,
		AverageProcessingTime: m.averageProcessingTime,
		LastUpdated:           m.lastUpdated,
		CustomCounters:        counters,
	}
}
