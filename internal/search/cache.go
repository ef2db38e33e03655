package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/campaignkit/campaign-agents/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Cache stores search results keyed by query, country and recency
type Cache interface {
	Get(ctx context.Context, q Query) ([]models.SearchResult, bool)
	Set(ctx context.Context, q Query, results []models.SearchResult)
}

// RedisCache implements Cache on top of Redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a cache backed by the given client
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// cacheKey includes the clamped limit, which changes the provider response
func cacheKey(q Query) string {
	return fmt.Sprintf("search:%s:%s:%d:%d",
		q.Country, q.Text, q.RecencyDays, clampLimit(q.Limit))
}

// Get returns the cached results for q. Any failure counts as a miss;
// failures other than a missing key are logged.
func (r *RedisCache) Get(ctx context.Context, q Query) ([]models.SearchResult, bool) {
	key := cacheKey(q)
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logrus.Warnf("Search cache read failed for '%s': %v", key, err)
		}
		return nil, false
	}

	var results []models.SearchResult
	if err := json.Unmarshal([]byte(val), &results); err != nil {
		logrus.Warnf("Search cache entry '%s' is corrupt: %v", key, err)
		return nil, false
	}
	return results, true
}

// Set stores results for q; write failures are logged and otherwise ignored.
func (r *RedisCache) Set(ctx context.Context, q Query, results []models.SearchResult) {
	key := cacheKey(q)
	data, err := json.Marshal(results)
	if err != nil {
		logrus.Warnf("Failed to encode search results for cache key '%s': %v", key, err)
		return
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		logrus.Warnf("Search cache write failed for '%s': %v", key, err)
	}
}
