package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// HTTPClientFactory creates optimized HTTP clients with standardized configuration
type HTTPClientFactory struct {
	defaultTimeout time.Duration
	client         *http.Client
}

// NewHTTPClientFactory creates a new HTTP client factory
func NewHTTPClientFactory(defaultTimeout time.Duration) *HTTPClientFactory {
	return &HTTPClientFactory{
		defaultTimeout: defaultTimeout,
		client: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				// Connection pool configuration for efficient resource utilization
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,

				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
	}
}

// Client returns the shared pooled HTTP client
func (f *HTTPClientFactory) Client() *http.Client {
	return f.client
}

// CleanupClient closes idle connections held by the pooled client
func (f *HTTPClientFactory) CleanupClient() {
	if transport, ok := f.client.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}

// Fetcher executes outbound GET requests with bounded retry and a fixed
// backoff between attempts. Every transport failure (connection error,
// non-2xx status, timeout) is retried identically; callers receive a typed
// *ServiceError after retries are exhausted instead of a raw transport error.
type Fetcher struct {
	factory    *HTTPClientFactory
	maxRetries int
	backoff    time.Duration
}

// NewFetcher creates a fetcher with the given retry budget, backoff between
// attempts and per-attempt timeout
func NewFetcher(maxRetries int, backoff, timeout time.Duration) *Fetcher {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &Fetcher{
		factory:    NewHTTPClientFactory(timeout),
		maxRetries: maxRetries,
		backoff:    backoff,
	}
}

// GetJSON performs an HTTP GET against rawURL with the given query params and
// headers, decoding the JSON response body into out. It attempts the call up
// to maxRetries times, sleeping the fixed backoff between attempts, and
// returns a typed error carrying the last failure once retries are exhausted.
func (f *Fetcher) GetJSON(ctx context.Context, rawURL string, params url.Values, headers map[string]string, out interface{}) error {
	requestURL := rawURL
	if len(params) > 0 {
		requestURL = rawURL + "?" + params.Encode()
	}

	logger := logrus.WithFields(logrus.Fields{
		"component": "Fetcher",
		"method":    "GetJSON",
		"url":       rawURL,
	})

	var lastAttemptError error

	for attemptNumber := 1; attemptNumber <= f.maxRetries; attemptNumber++ {
		if attemptNumber > 1 {
			logger.WithFields(logrus.Fields{
				"attempt":          attemptNumber,
				"backoff_duration": f.backoff,
			}).Debug("Retrying HTTP request after backoff")

			select {
			case <-time.After(f.backoff):
			case <-ctx.Done():
				return WrapError(ctx.Err(), ErrorCategoryTimeout, ErrCodeRetriesExhausted, "fetcher", "get_json", false)
			}
		}

		body, attemptErr := f.executeAttempt(ctx, requestURL, headers)
		if attemptErr == nil {
			if decodeErr := json.Unmarshal(body, out); decodeErr != nil {
				// A malformed body is a provider contract problem, not a
				// transient transport failure, so it is not retried.
				return NewServiceError(
					ErrorCategoryProcessing,
					ErrCodeBadResponse,
					fmt.Sprintf("failed to decode response body: %v", decodeErr),
					"fetcher",
					"get_json",
					false,
					decodeErr,
				)
			}

			logger.WithField("attempt", attemptNumber).Debug("HTTP request successful")
			return nil
		}

		lastAttemptError = fmt.Errorf("attempt %d failed: %w", attemptNumber, attemptErr)
		logger.WithError(lastAttemptError).Debug("HTTP request attempt failed")

		if ctx.Err() != nil {
			break
		}
	}

	logger.WithFields(logrus.Fields{
		"total_attempts": f.maxRetries,
		"final_error":    lastAttemptError,
	}).Warn("HTTP request failed after all retry attempts")

	category := ErrorCategoryNetwork
	if ctx.Err() != nil {
		category = ErrorCategoryTimeout
	}

	return NewServiceError(
		category,
		ErrCodeRetriesExhausted,
		fmt.Sprintf("request failed after %d attempts: %v", f.maxRetries, lastAttemptError),
		"fetcher",
		"get_json",
		IsRetryableError(lastAttemptError),
		lastAttemptError,
	)
}

// executeAttempt performs one outbound call and returns the response body on
// a 2xx status
func (f *Fetcher) executeAttempt(ctx context.Context, requestURL string, headers map[string]string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Accept", "application/json")
	for key, value := range headers {
		request.Header.Set(key, value)
	}

	response, err := f.factory.Client().Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d: %s", response.StatusCode, http.StatusText(response.StatusCode))
	}

	return body, nil
}
