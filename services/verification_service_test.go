package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/claimlens/claimlens-backend/models"
	"github.com/claimlens/claimlens-backend/providers"
	"github.com/claimlens/claimlens-backend/shared"
)

// stubProvider is an in-memory evidence provider for orchestrator tests
type stubProvider struct {
	name    string
	records []models.EvidenceRecord
	err     error
	delay   time.Duration
	calls   int32
}

func (p *stubProvider) Name() string {
	return p.name
}

func (p *stubProvider) Query(ctx context.Context, claim string) ([]models.EvidenceRecord, error) {
	atomic.AddInt32(&p.calls, 1)
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.records, nil
}

func (p *stubProvider) callCount() int {
	return int(atomic.LoadInt32(&p.calls))
}

// fixedClassifier returns a constant classification and counts invocations
type fixedClassifier struct {
	classification models.Classification
	calls          int32
}

func (c *fixedClassifier) Classify(claim string) models.Classification {
	atomic.AddInt32(&c.calls, 1)
	return c.classification
}

func record(title, source string) models.EvidenceRecord {
	return models.EvidenceRecord{Title: title, Source: source, URL: "https://example.com/" + strings.ReplaceAll(title, " ", "-")}
}

func newTestService(ttl time.Duration, classifier Classifier, evidenceProviders ...providers.EvidenceProvider) *VerificationService {
	return NewVerificationService(
		evidenceProviders,
		classifier,
		NewCacheService(ttl, 100),
		NewUtilityService(),
		time.Second,
	)
}

func TestVerifyClaimRejectsEmptyClaim(t *testing.T) {
	service := newTestService(time.Hour, NewStubClassifier())

	for _, claim := range []string{"", "   ", "\t\n"} {
		_, err := service.VerifyClaim(context.Background(), claim)
		if err == nil {
			t.Fatalf("Expected an error for claim %q", claim)
		}
		if !shared.IsValidationError(err) {
			t.Errorf("Empty claim should surface as a validation error, got %v", err)
		}
	}
}

func TestVerifyClaimCacheHitSkipsClassifierAndProviders(t *testing.T) {
	provider := &stubProvider{name: "GNews", records: []models.EvidenceRecord{record("article one", "GNews")}}
	classifier := &fixedClassifier{classification: models.Classification{Label: models.LabelVerified, Confidence: 0.85}}
	service := newTestService(time.Hour, classifier, provider)

	first, err := service.VerifyClaim(context.Background(), "the economy is growing")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	second, err := service.VerifyClaim(context.Background(), "the economy is growing")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if first != second {
		t.Error("Second call within TTL should return the cached result")
	}
	if provider.callCount() != 1 {
		t.Errorf("Cache hit should skip providers, saw %d calls", provider.callCount())
	}
	if atomic.LoadInt32(&classifier.calls) != 1 {
		t.Errorf("Cache hit should skip the classifier, saw %d calls", classifier.calls)
	}
}

func TestVerifyClaimCacheExpiryReinvokesPipeline(t *testing.T) {
	provider := &stubProvider{name: "GNews"}
	classifier := &fixedClassifier{classification: models.Classification{Label: models.LabelVerified, Confidence: 0.85}}
	service := newTestService(50*time.Millisecond, classifier, provider)

	if _, err := service.VerifyClaim(context.Background(), "the economy is growing"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	time.Sleep(60 * time.Millisecond)

	if _, err := service.VerifyClaim(context.Background(), "the economy is growing"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if provider.callCount() != 2 {
		t.Errorf("Expired entry should re-invoke providers, saw %d calls", provider.callCount())
	}
	if atomic.LoadInt32(&classifier.calls) != 2 {
		t.Errorf("Expired entry should re-invoke the classifier, saw %d calls", classifier.calls)
	}
}

func TestVerifyClaimProviderIsolation(t *testing.T) {
	healthy1 := &stubProvider{name: "Google FactCheck", records: []models.EvidenceRecord{record("fact check one", "Snopes")}}
	failing := &stubProvider{name: "GNews", err: errors.New("connection refused")}
	healthy2 := &stubProvider{name: "NewsAPI", records: []models.EvidenceRecord{record("article two", "Reuters")}}
	service := newTestService(time.Hour, NewStubClassifier(), healthy1, failing, healthy2)

	result, err := service.VerifyClaim(context.Background(), "one provider is down")
	if err != nil {
		t.Fatalf("A provider failure must not fail the request: %v", err)
	}

	expectedSources := []string{"Google FactCheck", "GNews", "NewsAPI"}
	if len(result.SourcesChecked) != len(expectedSources) {
		t.Fatalf("All providers must be listed as checked, got %v", result.SourcesChecked)
	}
	for i, name := range expectedSources {
		if result.SourcesChecked[i] != name {
			t.Errorf("sources_checked[%d] = %q, want %q", i, result.SourcesChecked[i], name)
		}
	}

	if len(result.Evidence) != 3 {
		t.Fatalf("Expected 2 real records plus 1 synthetic, got %d", len(result.Evidence))
	}

	synthetic := result.Evidence[1]
	if !strings.HasPrefix(synthetic.Title, "Error querying GNews: ") {
		t.Errorf("Unexpected synthetic record title: %q", synthetic.Title)
	}
	if synthetic.Source != "GNews" || synthetic.URL != "" || synthetic.Rating != nil {
		t.Errorf("Unexpected synthetic record shape: %+v", synthetic)
	}
}

func TestVerifyClaimFanoutDeadlineCutsOffSlowProvider(t *testing.T) {
	slow := &stubProvider{name: "GNews", delay: 500 * time.Millisecond, records: []models.EvidenceRecord{record("too late", "GNews")}}
	fast := &stubProvider{name: "NewsAPI", records: []models.EvidenceRecord{record("in time", "Reuters")}}
	service := NewVerificationService(
		[]providers.EvidenceProvider{slow, fast},
		NewStubClassifier(),
		NewCacheService(time.Hour, 100),
		NewUtilityService(),
		50*time.Millisecond,
	)

	started := time.Now()
	result, err := service.VerifyClaim(context.Background(), "one provider is slower than the deadline")
	if err != nil {
		t.Fatalf("A deadline cut-off must not fail the request: %v", err)
	}
	if elapsed := time.Since(started); elapsed >= 500*time.Millisecond {
		t.Errorf("Fan-out should be bounded by the deadline, took %v", elapsed)
	}

	if len(result.SourcesChecked) != 2 || result.SourcesChecked[0] != "GNews" || result.SourcesChecked[1] != "NewsAPI" {
		t.Errorf("Both providers must be listed as checked, got %v", result.SourcesChecked)
	}

	if len(result.Evidence) != 2 {
		t.Fatalf("Expected 1 synthetic plus 1 real record, got %d", len(result.Evidence))
	}
	synthetic := result.Evidence[0]
	if !strings.HasPrefix(synthetic.Title, "Error querying GNews: ") {
		t.Errorf("Slow provider should degrade to a synthetic record, got %+v", synthetic)
	}
	if synthetic.Source != "GNews" || synthetic.URL != "" {
		t.Errorf("Unexpected synthetic record shape: %+v", synthetic)
	}
	if result.Evidence[1].Title != "in time" {
		t.Errorf("Fast provider's record should survive, got %+v", result.Evidence[1])
	}
}

func TestVerifyClaimMergesInRegistrationOrder(t *testing.T) {
	slow := &stubProvider{name: "Google FactCheck", delay: 50 * time.Millisecond, records: []models.EvidenceRecord{record("slow first", "Snopes")}}
	fast := &stubProvider{name: "GNews", records: []models.EvidenceRecord{record("fast second", "GNews")}}
	service := newTestService(time.Hour, NewStubClassifier(), slow, fast)

	result, err := service.VerifyClaim(context.Background(), "ordering must be deterministic")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Evidence[0].Title != "slow first" || result.Evidence[1].Title != "fast second" {
		t.Errorf("Evidence must follow provider registration order, got %v", result.Evidence)
	}
	if result.SourcesChecked[0] != "Google FactCheck" || result.SourcesChecked[1] != "GNews" {
		t.Errorf("sources_checked must follow registration order, got %v", result.SourcesChecked)
	}
}

func TestVerifyClaimAllProvidersEmpty(t *testing.T) {
	factcheck := &stubProvider{name: "Google FactCheck"}
	gnews := &stubProvider{name: "GNews"}
	newsapi := &stubProvider{name: "NewsAPI"}
	service := newTestService(time.Hour, NewStubClassifier(), factcheck, gnews, newsapi)

	result, err := service.VerifyClaim(context.Background(), "The moon is made of cheese.")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(result.Evidence) != 0 {
		t.Errorf("Expected empty evidence, got %v", result.Evidence)
	}
	if len(result.SourcesChecked) != 3 {
		t.Errorf("All three providers should be listed, got %v", result.SourcesChecked)
	}
	if result.Confidence < 0.5 || result.Confidence >= 0.9 {
		t.Errorf("Confidence must come from the classifier, got %f", result.Confidence)
	}
	checkFakeDetectedInvariant(t, result)
}

func TestVerifyClaimFakeDetectedInvariant(t *testing.T) {
	provider := &stubProvider{name: "GNews"}
	service := newTestService(time.Hour, NewStubClassifier(), provider)

	for i := 0; i < 100; i++ {
		result, err := service.VerifyClaim(context.Background(), fmt.Sprintf("claim number %d", i))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		checkFakeDetectedInvariant(t, result)
	}
}

func checkFakeDetectedInvariant(t *testing.T, result *models.VerificationResult) {
	t.Helper()
	expected := 0
	if result.Label == models.LabelUnverified {
		expected = 1
	}
	if result.FakeDetected != expected {
		t.Errorf("fake_detected = %d for label %q", result.FakeDetected, result.Label)
	}
}

func TestVerifyClaimTrimsBeforeCaching(t *testing.T) {
	provider := &stubProvider{name: "GNews"}
	service := newTestService(time.Hour, NewStubClassifier(), provider)

	padded, err := service.VerifyClaim(context.Background(), "  the sky is blue  ")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if padded.Claim != "the sky is blue" {
		t.Errorf("Result should carry the normalized claim, got %q", padded.Claim)
	}

	bare, err := service.VerifyClaim(context.Background(), "the sky is blue")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if padded != bare {
		t.Error("Padded and bare claim should share one cache entry")
	}
	if provider.callCount() != 1 {
		t.Errorf("Expected a single provider call, saw %d", provider.callCount())
	}
}

func TestVerifyPageSplitsAndVerifiesInOrder(t *testing.T) {
	provider := &stubProvider{name: "GNews"}
	service := newTestService(time.Hour, NewStubClassifier(), provider)

	results, err := service.VerifyPage(context.Background(), "A is true and real. B is false entirely. C.")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 verified candidates, got %d", len(results))
	}
	if results[0].Claim != "A is true and real" || results[1].Claim != "B is false entirely" {
		t.Errorf("Unexpected candidate claims: %q, %q", results[0].Claim, results[1].Claim)
	}
}
