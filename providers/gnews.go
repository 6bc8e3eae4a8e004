package providers

import (
	"context"
	"net/url"
	"time"

	"github.com/claimlens/claimlens-backend/models"
	"github.com/claimlens/claimlens-backend/shared"
	"github.com/sirupsen/logrus"
)

const gnewsBaseURL = "https://gnews.io/api/v4/search"

// GNewsProvider searches the GNews article API for claim-related coverage
type GNewsProvider struct {
	apiKey      string
	baseURL     string
	fetcher     *shared.Fetcher
	rateLimiter *shared.HTTPRequestRateLimiter
}

// NewGNewsProvider creates a GNews adapter using the shared fetcher
func NewGNewsProvider(apiKey string, fetcher *shared.Fetcher, politenessDelay time.Duration) *GNewsProvider {
	return &GNewsProvider{
		apiKey:      apiKey,
		baseURL:     gnewsBaseURL,
		fetcher:     fetcher,
		rateLimiter: shared.NewHTTPRequestRateLimiter(politenessDelay),
	}
}

func (p *GNewsProvider) Name() string {
	return "GNews"
}

type newsSearchResponse struct {
	Articles []struct {
		Title  string `json:"title"`
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// Query searches news articles mentioning the claim. A response without the
// top-level articles collection yields an empty slice, not an error.
func (p *GNewsProvider) Query(ctx context.Context, claim string) ([]models.EvidenceRecord, error) {
	p.rateLimiter.EnforceRateLimit()

	params := url.Values{}
	params.Set("q", claim)
	params.Set("lang", "en")
	params.Set("token", p.apiKey)

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
		"component": "GNewsProvider",
		"records":   len(records),
	}).Debug("GNews query completed")

	return records, nil
}
