// Package providers contains the evidence provider adapters. Each adapter
// owns the request construction and response parsing for one upstream API and
// maps its payload into models.EvidenceRecord; all of them share the resilient
// fetcher for transport.
package providers

import (
	"context"
	"time"

	"github.com/claimlens/claimlens-backend/models"
)

// EvidenceProvider returns evidence related to a claim. An empty slice is a
// valid answer; an error means the provider itself could not be consulted.
type EvidenceProvider interface {
	Name() string
	Query(ctx context.Context, claim string) ([]models.EvidenceRecord, error)
}

// parseTimestamp converts a provider timestamp string into an optional
// time.Time. Unparseable or missing values stay unset rather than being
// replaced with a placeholder.
func parseTimestamp(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &parsed
}

// sourceOrDefault falls back to the provider display name when the upstream
// record omits the publisher
func sourceOrDefault(source, providerName string) string {
	if source == "" {
		return providerName
	}
	return source
}
