package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/campaignkit/campaign-agents/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const serpAPIBaseURL = "https://serpapi.com"

// SerpAPIProvider is the fallback provider backed by SerpAPI's Google engine
type SerpAPIProvider struct {
	apiKey string
	client *resty.Client
}

type serpAPIResponse struct {
	OrganicResults []organicResult `json:"organic_results"`
}

// NewSerpAPIProvider creates a SerpAPI provider
func NewSerpAPIProvider(apiKey string, opts ...Option) (*SerpAPIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("serpapi needs an API key: %w", ErrNotConfigured)
	}

	return &SerpAPIProvider{
		apiKey: apiKey,
		client: newHTTPClient(serpAPIBaseURL, opts),
	}, nil
}

func (s *SerpAPIProvider) Name() string {
	return "serpapi"
}

func (s *SerpAPIProvider) Search(ctx context.Context, q Query) ([]models.SearchResult, error) {
	params := map[string]string{
		"q":       q.Text,
		"api_key": s.apiKey,
		"engine":  "google",
		"num":     strconv.Itoa(clampLimit(q.Limit)),
	}
	if q.Country != "" {
		params["gl"] = q.Country
	}
	if q.RecencyDays > 0 {
		params["tbs"] = fmt.Sprintf("qdr:d%d", q.RecencyDays)
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/search.json")
	if err != nil {
		return nil, fmt.Errorf("serpapi request failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("serpapi returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var searchResp serpAPIResponse
	if err := json.Unmarshal(resp.Body(), &searchResp); err != nil {
		return nil, fmt.Errorf("failed to parse serpapi response: %w", err)
	}

	results := toSearchResults(searchResp.OrganicResults)
	logrus.Infof("SerpAPI returned %d results for: %s", len(results), q.Text)
	return results, nil
}
