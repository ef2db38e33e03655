package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// SearchResult is a single organic result returned by a search provider
type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Confidence is the coarse bucket derived from a relevance score
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ConfidenceFor maps a 0-10 relevance score to its confidence tier.
func ConfidenceFor(score float64) Confidence {
	switch {
	case score >= 7:
		return ConfidenceHigh
	case score >= 4:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// ScoredCandidate is a search result annotated with its relevance
type ScoredCandidate struct {
	SearchResult
	RelevanceScore float64    `json:"relevance_score"` // 0-10
	Confidence     Confidence `json:"confidence"`
}

// PlatformWeight is the search priority of a single platform domain
type PlatformWeight struct {
	Platform string `json:"platform"` // "instagram.com", "youtube.com", etc.
	Weight   int    `json:"weight"`
}

// PlatformWeights keeps platform priorities in the order they were assigned.
// Query construction depends on that order, so it is not a plain map.
type PlatformWeights []PlatformWeight

// Get returns the weight of a platform, 0 when absent.
func (p PlatformWeights) Get(platform string) int {
	for _, pw := range p {
		if pw.Platform == platform {
			return pw.Weight
		}
	}
	return 0
}

// Has reports whether the platform has an assigned weight.
func (p PlatformWeights) Has(platform string) bool {
	for _, pw := range p {
		if pw.Platform == platform {
			return true
		}
	}
	return false
}

// Set updates the weight of an existing platform or appends it.
func (p PlatformWeights) Set(platform string, weight int) PlatformWeights {
	for i := range p {
		if p[i].Platform == platform {
			p[i].Weight = weight
			return p
		}
	}
	return append(p, PlatformWeight{Platform: platform, Weight: weight})
}

// MarshalJSON renders the weights as an object, preserving order.
func (p PlatformWeights) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, pw := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(pw.Platform)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(pw.Weight))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DiscoveryMetadata records how many candidates survived each stage
type DiscoveryMetadata struct {
	TotalScanned         int `json:"total_scanned"`
	ProfilesFound        int `json:"profiles_found"`
	AfterRelevanceFilter int `json:"after_relevance_filter"`
}

// DiscoveryResult is the ranked output of one influencer discovery run
type DiscoveryResult struct {
	Influencers        []ScoredCandidate `json:"influencers"`
	Count              int               `json:"count"`
	Domain             string            `json:"domain"`
	TargetAudience     string            `json:"target_audience"`
	SearchQueriesUsed  []string          `json:"search_queries_used"`
	Country            string            `json:"country,omitempty"`
	RecentDays         int               `json:"recent_days,omitempty"`
	PlatformPriorities PlatformWeights   `json:"platform_priorities"`
	Metadata           DiscoveryMetadata `json:"metadata"`
}

// Insights are aggregate statistics over a discovery result
type Insights struct {
	TotalInfluencersFound int            `json:"total_influencers_found"`
	PlatformDistribution  map[string]int `json:"platform_distribution"`
	RecommendedPlatforms  []string       `json:"recommended_platforms"`
	AverageRelevanceScore float64        `json:"average_relevance_score"`
	HighConfidenceCount   int            `json:"high_confidence_count"`
	SearchEffectiveness   string         `json:"search_effectiveness"` // "high", "medium" or "low"
}

// Strategy is the campaign brief that drives a discovery run
type Strategy struct {
	Product    string   `json:"product,omitempty"`
	Domain     string   `json:"domain,omitempty"`
	Audience   string   `json:"audience,omitempty"`
	Platforms  []string `json:"platforms,omitempty"`
	Country    string   `json:"country,omitempty"`
	RecentDays int      `json:"recent_days,omitempty"`
	NumResults int      `json:"num_results,omitempty"`
}

// Filters echoes the filters applied to an analysis
type Filters struct {
	Country    string   `json:"country,omitempty"`
	RecentDays int      `json:"recent_days,omitempty"`
	Platforms  []string `json:"platforms"`
}

// Analysis is the full response for a campaign strategy
type Analysis struct {
	Status          string            `json:"status"`
	Domain          string            `json:"domain"`
	TargetAudience  string            `json:"target_audience"`
	Influencers     []ScoredCandidate `json:"influencers"`
	Insights        Insights          `json:"insights"`
	Recommendations []string          `json:"recommendations"`
	Filters         Filters           `json:"filters"`
	Result          *DiscoveryResult  `json:"result"`
}

// Report represents a published discovery shortlist
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Campaign    string    `json:"campaign"`
	StorageKey  string    `json:"storage_key,omitempty"`
	Analysis    *Analysis `json:"analysis"`
}
