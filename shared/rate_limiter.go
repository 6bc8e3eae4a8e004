package shared

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// HTTPRequestRateLimiter implements thread-safe politeness delays between
// outbound requests to one upstream API
type HTTPRequestRateLimiter struct {
	minimumDelay    time.Duration
	lastRequestTime time.Time
	mutex           sync.Mutex
	requestCount    int64
}

// NewHTTPRequestRateLimiter creates a new rate limiter with the specified
// minimum delay. A zero or negative delay disables waiting entirely.
func NewHTTPRequestRateLimiter(minimumDelay time.Duration) *HTTPRequestRateLimiter {
	return &HTTPRequestRateLimiter{
		minimumDelay: minimumDelay,
	}
}

// EnforceRateLimit blocks execution until the minimum delay has elapsed since
// the last request
func (limiter *HTTPRequestRateLimiter) EnforceRateLimit() {
	limiter.mutex.Lock()
	defer limiter.mutex.Unlock()

	if limiter.minimumDelay > 0 && !limiter.lastRequestTime.IsZero() {
		elapsedTime := time.Since(limiter.lastRequestTime)
		if elapsedTime < limiter.minimumDelay {
			remainingDelay := limiter.minimumDelay - elapsedTime

			logrus.WithFields(logrus.Fields{
				"component":       "HTTPRequestRateLimiter",
				"elapsed_time":    elapsedTime,
				"remaining_delay": remainingDelay,
				"request_count":   limiter.requestCount + 1,
			}).Debug("Enforcing rate limit delay")

			time.Sleep(remainingDelay)
		}
	}

	limiter.lastRequestTime = time.Now()
	limiter.requestCount++
}

// GetRequestCount returns the total number of requests processed
func (limiter *HTTPRequestRateLimiter) GetRequestCount() int64 {
	limiter.mutex.Lock()
	defer limiter.mutex.Unlock()
	return limiter.requestCount
}
