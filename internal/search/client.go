package search

import (
	"context"
	"fmt"
	"time"

	"github.com/campaignkit/campaign-agents/internal/models"
	"github.com/sirupsen/logrus"
)

// Client runs a query against the primary provider and falls back to the
// secondary one when the primary fails. It never returns an error.
type Client struct {
	primary  Provider
	fallback Provider
	cache    Cache
}

// NewClient creates a search client. fallback and cache may be nil.
func NewClient(primary, fallback Provider, cache Cache) (*Client, error) {
	if primary == nil {
		return nil, fmt.Errorf("primary search provider is required: %w", ErrNotConfigured)
	}
	return &Client{primary: primary, fallback: fallback, cache: cache}, nil
}

// Search returns the results for q, or an empty slice when every provider failed.
func (c *Client) Search(ctx context.Context, q Query) []models.SearchResult {
	q.Limit = clampLimit(q.Limit)

	if c.cache != nil {
		if cached, ok := c.cache.Get(ctx, q); ok {
			cacheLookups.WithLabelValues("hit").Inc()
			return cached
		}
		cacheLookups.WithLabelValues("miss").Inc()
	}

	results, err := c.call(ctx, c.primary, q)
	if err != nil {
		logrus.Errorf("Search provider %s failed for query '%s': %v", c.primary.Name(), q.Text, err)

		if c.fallback == nil {
			return []models.SearchResult{}
		}

		logrus.Infof("Attempting fallback to %s", c.fallback.Name())
		results, err = c.call(ctx, c.fallback, q)
		if err != nil {
			logrus.Errorf("Fallback provider %s failed for query '%s': %v", c.fallback.Name(), q.Text, err)
			return []models.SearchResult{}
		}
	}

	if c.cache != nil && len(results) > 0 {
		c.cache.Set(ctx, q, results)
	}
	return results
}

func (c *Client) call(ctx context.Context, p Provider, q Query) ([]models.SearchResult, error) {
	start := time.Now()
	results, err := p.Search(ctx, q)
	providerDuration.WithLabelValues(p.Name()).Observe(time.Since(start).Seconds())

	if err != nil {
		providerRequests.WithLabelValues(p.Name(), "error").Inc()
		return nil, err
	}
	providerRequests.WithLabelValues(p.Name(), "ok").Inc()
	if results == nil {
		results = []models.SearchResult{}
	}
	return results, nil
}
