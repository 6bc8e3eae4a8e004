package providers

import (
	"context"
	"net/url"
	"time"

	"github.com/claimlens/claimlens-backend/models"
	"github.com/claimlens/claimlens-backend/shared"
	"github.com/sirupsen/logrus"
)

const newsAPIBaseURL = "https://newsapi.org/v2/everything"

// NewsAPIProvider searches the NewsAPI everything endpoint for claim-related
// coverage. Its article shape matches GNews, so it reuses newsSearchResponse.
type NewsAPIProvider struct {
	apiKey      string
	baseURL     string
	fetcher     *shared.Fetcher
	rateLimiter *shared.HTTPRequestRateLimiter
}

// NewNewsAPIProvider creates a NewsAPI adapter using the shared fetcher
func NewNewsAPIProvider(apiKey string, fetcher *shared.Fetcher, politenessDelay time.Duration) *NewsAPIProvider {
	return &NewsAPIProvider{
		apiKey:      apiKey,
		baseURL:     newsAPIBaseURL,
		fetcher:     fetcher,
		rateLimiter: shared.NewHTTPRequestRateLimiter(politenessDelay),
	}
}

func (p *NewsAPIProvider) Name() string {
	return "NewsAPI"
}

// Query searches news articles mentioning the claim. A response without the
// top-level articles collection yields an empty slice, not an error.
func (p *NewsAPIProvider) Query(ctx context.Context, claim string) ([]models.EvidenceRecord, error) {
	p.rateLimiter.EnforceRateLimit()

	params := url.Values{}
	params.Set("q", claim)
	params.Set("apiKey", p.apiKey)

	var response newsSearchResponse
	if err := p.fetcher.GetJSON(ctx, p.baseURL, params, nil, &response); err != nil {
		return nil, shared.WrapError(err, shared.ErrorCategoryProvider, shared.ErrCodeRetriesExhausted, p.Name(), "query", shared.IsRetryableError(err))
	}

	records := make([]models.EvidenceRecord, 0, len(response.Articles))
	for _, article := range response.Articles {
		records = append(records, models.EvidenceRecord{
			Title:       article.Title,
			Source:      sourceOrDefault(article.Source.Name, p.Name()),
			URL:         article.URL,
			PublishedAt: parseTimestamp(article.PublishedAt),
		})
	}

	logrus.WithFields(logrus.Fields{
		"component": "NewsAPIProvider",
		"records":   len(records),
	}).Debug("NewsAPI query completed")

	return records, nil
}
