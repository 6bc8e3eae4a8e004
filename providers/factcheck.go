package providers

import (
	"context"
	"net/url"
	"time"

	"github.com/claimlens/claimlens-backend/models"
	"github.com/claimlens/claimlens-backend/shared"
	"github.com/sirupsen/logrus"
)

const factCheckBaseURL = "https://factchecktools.googleapis.com/v1alpha1/claims:search"

// FactCheckProvider queries the Google FactCheck Tools claim search API
type FactCheckProvider struct {
	apiKey      string
	baseURL     string
	fetcher     *shared.Fetcher
	rateLimiter *shared.HTTPRequestRateLimiter
}

// NewFactCheckProvider creates a FactCheck adapter using the shared fetcher
func NewFactCheckProvider(apiKey string, fetcher *shared.Fetcher, politenessDelay time.Duration) *FactCheckProvider {
	return &FactCheckProvider{
		apiKey:      apiKey,
		baseURL:     factCheckBaseURL,
		fetcher:     fetcher,
		rateLimiter: shared.NewHTTPRequestRateLimiter(politenessDelay),
	}
}

func (p *FactCheckProvider) Name() string {
	return "Google FactCheck"
}

type factCheckResponse struct {
	Claims []struct {
		Text        string `json:"text"`
		ClaimReview []struct {
			Publisher struct {
				Name string `json:"name"`
			} `json:"publisher"`
			URL           string `json:"url"`
			TextualRating string `json:"textualRating"`
		} `json:"claimReview"`
	} `json:"claims"`
}

// Query searches fact-check reviews for the claim. A response without the
// top-level claims collection yields an empty slice, not an error.
func (p *FactCheckProvider) Query(ctx context.Context, claim string) ([]models.EvidenceRecord, error) {
	p.rateLimiter.EnforceRateLimit()

	params := url.Values{}
	params.Set("query", claim)
	params.Set("key", p.apiKey)

	var response factCheckResponse
	if err := p.fetcher.GetJSON(ctx, p.baseURL, params, nil, &response); err != nil {
		return nil, shared.WrapError(err, shared.ErrorCategoryProvider, shared.ErrCodeRetriesExhausted, p.Name(), "query", shared.IsRetryableError(err))
	}

	records := make([]models.EvidenceRecord, 0, len(response.Claims))
	for _, c := range response.Claims {
		record := models.EvidenceRecord{
			Title:  c.Text,
			Source: p.Name(),
		}
		if len(c.ClaimReview) > 0 {
			review := c.ClaimReview[0]
			record.Source = sourceOrDefault(review.Publisher.Name, p.Name())
			record.URL = review.URL
			if review.TextualRating != "" {
				rating := review.TextualRating
				record.Rating = &rating
			}
		}
		records = append(records, record)
	}

	logrus.WithFields(logrus.Fields{
		"component": "FactCheckProvider",
		"records":   len(records),
	}).Debug("FactCheck query completed")

	return records, nil
}
