package shared

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrorCategory represents different types of errors that can occur
type ErrorCategory string

const (
	ErrorCategoryValidation ErrorCategory = "validation"
	ErrorCategoryNetwork    ErrorCategory = "network"
	ErrorCategoryTimeout    ErrorCategory = "timeout"
	ErrorCategoryProvider   ErrorCategory = "provider"
	ErrorCategoryProcessing ErrorCategory = "processing"
)

// Error codes shared across services
const (
	ErrCodeEmptyClaim       = "EMPTY_CLAIM"
	ErrCodeRetriesExhausted = "RETRIES_EXHAUSTED"
	ErrCodeBadResponse      = "BAD_RESPONSE"
)

// ServiceError represents a standardized error with additional context
type ServiceError struct {
	Category    ErrorCategory `json:"category"`
	Code        string        `json:"code"`
	Message     string        `json:"message"`
	Timestamp   time.Time     `json:"timestamp"`
	ServiceName string        `json:"service_name"`
	Operation   string        `json:"operation"`
	Retryable   bool          `json:"retryable"`
	Cause       error         `json:"-"` // Original error, not serialized
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// NewServiceError creates a new service error
func NewServiceError(category ErrorCategory, code, message, serviceName, operation string, retryable bool, cause error) *ServiceError {
	return &ServiceError{
		Category:    category,
		Code:        code,
		Message:     message,
		Timestamp:   time.Now(),
		ServiceName: serviceName,
		Operation:   operation,
		Retryable:   retryable,
		Cause:       cause,
	}
}

// IsRetryable returns whether the error is retryable
func (e *ServiceError) IsRetryable() bool {
	return e.Retryable
}

// LogError logs the error with structured fields
func (e *ServiceError) LogError() {
	logrus.WithFields(logrus.Fields{
		"error_category":   e.Category,
		"error_code":       e.Code,
		"error_message":    e.Message,
		"service_name":     e.ServiceName,
		"operation":        e.Operation,
		"retryable":        e.Retryable,
		"underlying_error": e.Cause,
	}).Error("Service error occurred")
}

// NewEmptyClaimError builds the caller-facing error for a blank claim
func NewEmptyClaimError(serviceName string) *ServiceError {
	return NewServiceError(
		ErrorCategoryValidation,
		ErrCodeEmptyClaim,
		"claim text is empty after trimming",
		serviceName,
		"verify_claim",
		false,
		nil,
	)
}

// IsValidationError reports whether err is a caller error rather than a
// downstream failure
func IsValidationError(err error) bool {
	if serviceErr, ok := err.(*ServiceError); ok {
		return serviceErr.Category == ErrorCategoryValidation
	}
	return false
}

// WrapError wraps an existing error with service error context
func WrapError(err error, category ErrorCategory, code, serviceName, operation string, retryable bool) *ServiceError {
	if err == nil {
		return nil
	}

	// If it's already a ServiceError, just update the context
	if serviceErr, ok := err.(*ServiceError); ok {
		serviceErr.ServiceName = serviceName
		serviceErr.Operation = operation
		return serviceErr
	}

	return NewServiceError(category, code, err.Error(), serviceName, operation, retryable, err)
}

// IsRetryableError checks if an error is retryable
func IsRetryableError(err error) bool {
	if serviceErr, ok := err.(*ServiceError); ok {
		return serviceErr.IsRetryable()
	}

	// Default heuristics for standard errors
	errorMsg := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"timeout", "connection refused", "connection reset",
		"temporary failure", "service unavailable", "too many requests",
		"network", "dns", "socket",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errorMsg, pattern) {
			return true
		}
	}

	return false
}
