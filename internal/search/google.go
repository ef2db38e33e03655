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

const googleBaseURL = "https://www.googleapis.com"

// GoogleProvider queries the Google Custom Search JSON API
type GoogleProvider struct {
	apiKey string
	cx     string
	client *resty.Client
}

type googleSearchResponse struct {
	Items []organicResult `json:"items"`
}

type organicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// NewGoogleProvider creates a Custom Search provider; both credentials are required
func NewGoogleProvider(apiKey, cx string, opts ...Option) (*GoogleProvider, error) {
	if apiKey == "" || cx == "" {
		return nil, fmt.Errorf("google custom search needs an API key and engine ID: %w", ErrNotConfigured)
	}

	return &GoogleProvider{
		apiKey: apiKey,
		cx:     cx,
		client: newHTTPClient(googleBaseURL, opts),
	}, nil
}

func (g *GoogleProvider) Name() string {
	return "google"
}

func (g *GoogleProvider) Search(ctx context.Context, q Query) ([]models.SearchResult, error) {
	params := map[string]string{
		"key": g.apiKey,
		"cx":  g.cx,
		"q":   q.Text,
		"num": strconv.Itoa(clampLimit(q.Limit)),
	}
	if q.Country != "" {
		params["gl"] = q.Country
	}
	if q.RecencyDays > 0 {
		params["dateRestrict"] = fmt.Sprintf("d%d", q.RecencyDays)
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/customsearch/v1")
	if err != nil {
		return nil, fmt.Errorf("google search request failed: %w", err)
	}

	if resp.StatusCode() == 403 {
		logrus.Error("Google Custom Search API returned 403 Forbidden (quota or key restriction)")
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("google search returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var searchResp googleSearchResponse
	if err := json.Unmarshal(resp.Body(), &searchResp); err != nil {
		return nil, fmt.Errorf("failed to parse google search response: %w", err)
	}

	results := toSearchResults(searchResp.Items)
	logrus.Infof("Google Search returned %d results for: %s", len(results), q.Text)
	return results, nil
}

func toSearchResults(items []organicResult) []models.SearchResult {
	results := make([]models.SearchResult, 0, len(items))
	for _, item := range items {
		results = append(results, models.SearchResult{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
	}
	return results
}
