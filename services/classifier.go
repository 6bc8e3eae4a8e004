package services

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/claimlens/claimlens-backend/models"
)

// verifiedThreshold is the confidence boundary between labels. The
// aggregation logic depends on this constant staying in lockstep with
// whatever classifier implementation is plugged in.
const verifiedThreshold = 0.8

// Classifier assigns a label and confidence score to a claim. It is a
// pluggable capability so a real model can replace the stub without touching
// the verification service.
type Classifier interface {
	Classify(claim string) models.Classification
}

// StubClassifier is a placeholder classifier that draws a confidence score in
// [0.5, 0.9) and derives the label from the threshold. It stands in for a
// future model; only the label/confidence coupling is contractual.
type StubClassifier struct {
	rng   *rand.Rand
	mutex sync.Mutex
}

// NewStubClassifier creates a stub classifier with a time-seeded generator
func NewStubClassifier() *StubClassifier {
	return &StubClassifier{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Classify returns a placeholder classification for the claim. The claim text
// is ignored; the result is non-deterministic by design of the stand-in.
func (c *StubClassifier) Classify(claim string) models.Classification {
	c.mutex.Lock()
	raw := 0.5 + c.rng.Float64()*0.4
	c.mutex.Unlock()

	confidence := math.Round(raw*100) / 100
	if confidence >= 0.9 {
		confidence = 0.89
	}

	label := models.LabelVerified
	if confidence < verifiedThreshold {
		label = models.LabelUnverified
	}

	return models.Classification{
		Label:      label,
		Confidence: confidence,
	}
}
