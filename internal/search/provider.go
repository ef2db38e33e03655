package search

import (
	"context"
	"errors"
	"time"

	"github.com/campaignkit/campaign-agents/internal/models"
	"github.com/go-resty/resty/v2"
)

// MaxResults is the hard per-request limit of the search providers
const MaxResults = 10

const defaultTimeout = 15 * time.Second

// ErrNotConfigured is returned when a provider is built without its credentials
var ErrNotConfigured = errors.New("search provider not configured")

// Query is a single search request
type Query struct {
	Text        string
	Limit       int
	Country     string // empty means no country bias
	RecencyDays int    // 0 means no date restriction
}

// Provider interface defines the contract for web search backends
type Provider interface {
	Name() string
	Search(ctx context.Context, q Query) ([]models.SearchResult, error)
}

// Option customizes a provider's HTTP client
type Option func(*resty.Client)

// WithBaseURL points a provider at a different endpoint
func WithBaseURL(baseURL string) Option {
	return func(c *resty.Client) {
		c.SetBaseURL(baseURL)
	}
}

// WithTimeout overrides the per-request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *resty.Client) {
		c.SetTimeout(timeout)
	}
}

func newHTTPClient(baseURL string, opts []Option) *resty.Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetHeader("User-Agent", "Campaign-Agents/1.0")
	for _, opt := range opts {
		opt(client)
	}
	return client
}

func clampLimit(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxResults {
		return MaxResults
	}
	return n
}
