package models

import "time"

// Claim labels produced by the classifier.
const (
	LabelVerified   = "Verified"
	LabelUnverified = "Unverified"
)

// EvidenceRecord is a single article or fact-check returned by an evidence
// provider. PublishedAt and Rating are optional and stay unset when the
// provider omits them.
type EvidenceRecord struct {
	Title       string     `json:"title"`
	Source      string     `json:"source"`
	URL         string     `json:"url"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Rating      *string    `json:"rating,omitempty"`
}

// VerificationResult is the verdict for one claim. FakeDetected is derived:
// 1 iff Label == LabelUnverified. Use NewVerificationResult so the coupling
// cannot drift.
type VerificationResult struct {
	Claim          string           `json:"claim"`
	Label          string           `json:"label"`
	Confidence     float64          `json:"confidence"`
	SourcesChecked []string         `json:"sources_checked"`
	Evidence       []EvidenceRecord `json:"evidence"`
	FakeDetected   int              `json:"fake_detected"`
}

// NewVerificationResult assembles a result and derives FakeDetected from the label.
func NewVerificationResult(claim, label string, confidence float64, sourcesChecked []string, evidence []EvidenceRecord) *VerificationResult {
	fakeDetected := 0
	if label == LabelUnverified {
		fakeDetected = 1
	}
	return &VerificationResult{
		Claim:          claim,
		Label:          label,
		Confidence:     confidence,
		SourcesChecked: sourcesChecked,
		Evidence:       evidence,
		FakeDetected:   fakeDetected,
	}
}

// Classification is the classifier's output for a claim.
type Classification struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}
