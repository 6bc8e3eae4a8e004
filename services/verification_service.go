package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/claimlens/claimlens-backend/models"
	"github.com/claimlens/claimlens-backend/providers"
	"github.com/claimlens/claimlens-backend/shared"
	"github.com/sirupsen/logrus"
)

// VerificationService coordinates one claim verification request: cache
// lookup, classification, evidence fan-out across all registered providers,
// aggregation and cache write-through. Provider failures never abort a
// request; they degrade to a synthetic evidence record.
type VerificationService struct {
	Providers      []providers.EvidenceProvider
	Classifier     Classifier
	Cache          *CacheService
	UtilityService *UtilityService
	metrics        *shared.ServiceMetrics
	fanoutTimeout  time.Duration
}

// NewVerificationService wires the orchestrator with its collaborators. The
// provider slice order is the registration order: sources_checked and the
// merged evidence follow it regardless of call completion order.
func NewVerificationService(evidenceProviders []providers.EvidenceProvider, classifier Classifier, cache *CacheService, utility *UtilityService, fanoutTimeout time.Duration) *VerificationService {
	return &VerificationService{
		Providers:      evidenceProviders,
		Classifier:     classifier,
		Cache:          cache,
		UtilityService: utility,
		metrics:        shared.NewServiceMetrics("verification"),
		fanoutTimeout:  fanoutTimeout,
	}
}

// VerifyClaim verifies one claim and returns the verdict. The only caller
// error is an empty claim; everything downstream degrades gracefully.
func (vs *VerificationService) VerifyClaim(ctx context.Context, claimText string) (*models.VerificationResult, error) {
	startTime := time.Now()

	claim := vs.UtilityService.NormalizeClaim(claimText)
	if claim == "" {
		vs.metrics.RecordRequest(false, time.Since(startTime))
		return nil, shared.NewEmptyClaimError("verification")
	}

	fingerprint := vs.UtilityService.Fingerprint(claim)

	if cached, found := vs.Cache.Lookup(fingerprint); found {
		vs.metrics.IncrementCounter("cache_hit")
		vs.metrics.RecordRequest(true, time.Since(startTime))

		logrus.WithFields(logrus.Fields{
			"component":   "VerificationService",
			"fingerprint": fingerprint,
		}).Debug("Serving verdict from cache")

		return cached, nil
	}
	vs.metrics.IncrementCounter("cache_miss")

	classification := vs.Classifier.Classify(claim)

	sourcesChecked, evidence := vs.gatherEvidence(ctx, claim)

	result := models.NewVerificationResult(claim, classification.Label, classification.Confidence, sourcesChecked, evidence)
	vs.Cache.Store(fingerprint, result)

	vs.metrics.RecordRequest(true, time.Since(startTime))

	logrus.WithFields(logrus.Fields{
		"component":       "VerificationService",
		"fingerprint":     fingerprint,
		"label":           result.Label,
		"evidence_count":  len(result.Evidence),
		"sources_checked": len(result.SourcesChecked),
	}).Info("Claim verified")

	return result, nil
}

// gatherEvidence fans out to every registered provider concurrently and
// merges the results in registration order. A failed provider contributes a
// synthetic error record and is still listed as checked: checked means
// attempted.
func (vs *VerificationService) gatherEvidence(ctx context.Context, claim string) ([]string, []models.EvidenceRecord) {
	fanoutCtx := ctx
	if vs.fanoutTimeout > 0 {
		var cancel context.CancelFunc
		fanoutCtx, cancel = context.WithTimeout(ctx, vs.fanoutTimeout)
		defer cancel()
	}

	providerResults := make([][]models.EvidenceRecord, len(vs.Providers))

	var wg sync.WaitGroup
	for i, provider := range vs.Providers {
		wg.Add(1)
		go func(index int, provider providers.EvidenceProvider) {
			defer wg.Done()

			records, err := provider.Query(fanoutCtx, claim)
			if err != nil {
				vs.metrics.IncrementCounter("provider_failure")

				logrus.WithFields(logrus.Fields{
					"component": "VerificationService",
					"provider":  provider.Name(),
				}).WithError(err).Warn("Evidence provider failed, continuing with synthetic record")

				records = []models.EvidenceRecord{{
					Title:  fmt.Sprintf("Error querying %s: %s", provider.Name(), err.Error()),
					Source: provider.Name(),
					URL:    "",
				}}
			}
			providerResults[index] = records
		}(i, provider)
	}
	wg.Wait()

	sourcesChecked := make([]string, 0, len(vs.Providers))
	evidence := make([]models.EvidenceRecord, 0)
	for i, provider := range vs.Providers {
		sourcesChecked = append(sourcesChecked, provider.Name())
		evidence = append(evidence, providerResults[i]...)
	}

	return sourcesChecked, evidence
}

// VerifyPage splits a block of text into candidate claims and verifies each
// one in order
func (vs *VerificationService) VerifyPage(ctx context.Context, text string) ([]*models.VerificationResult, error) {
	candidates := vs.UtilityService.SplitClaims(text)

	results := make([]*models.VerificationResult, 0, len(candidates))
	for _, candidate := range candidates {
		result, err := vs.VerifyClaim(ctx, candidate)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

// GetServiceMetrics returns the metrics tracker for this service
func (vs *VerificationService) GetServiceMetrics() *shared.ServiceMetrics {
	return vs.metrics
}
