package discovery

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/campaignkit/campaign-agents/internal/models"
	"github.com/campaignkit/campaign-agents/internal/search"
	"github.com/sirupsen/logrus"
)

const (
	// MaxQueries caps how many built queries are sent to the search provider
	MaxQueries = 6
	// MinRelevanceScore is the lowest score kept in a shortlist
	MinRelevanceScore = 3.0
	// DefaultNumResults is the shortlist size when the caller does not set one
	DefaultNumResults = 5
)

// ErrInvalidRequest is returned when a strategy has no usable domain or audience
var ErrInvalidRequest = errors.New("missing domain or target audience")

// Searcher runs one web search; failures yield an empty slice
type Searcher interface {
	Search(ctx context.Context, q search.Query) []models.SearchResult
}

// Request describes one influencer discovery run
type Request struct {
	Domain         string
	TargetAudience string
	Platforms      []string
	Country        string
	RecentDays     int
	NumResults     int
}

// Service composes query building, search, classification and scoring
type Service struct {
	searcher    Searcher
	classifier  *URLClassifier
	scorer      *Scorer
	prioritizer *Prioritizer
	queries     *QueryBuilder
	concurrent  bool
}

// NewService creates a discovery service. When concurrent is set the
// searches of a run are issued in parallel.
func NewService(searcher Searcher, concurrent bool) *Service {
	classifier := NewURLClassifier()
	return &Service{
		searcher:    searcher,
		classifier:  classifier,
		scorer:      NewScorer(classifier),
		prioritizer: NewPrioritizer(),
		queries:     NewQueryBuilder(),
		concurrent:  concurrent,
	}
}

// Discover runs the full pipeline and returns a ranked, filtered shortlist.
// A failing search only removes that query's results.
func (s *Service) Discover(ctx context.Context, req Request) *models.DiscoveryResult {
	start := time.Now()
	defer func() { runDuration.Observe(time.Since(start).Seconds()) }()

	if req.NumResults <= 0 {
		req.NumResults = DefaultNumResults
	}

	logrus.Infof("Finding influencers: domain=%s, audience=%s, platforms=%v, country=%s",
		req.Domain, req.TargetAudience, req.Platforms, req.Country)

	weights := s.prioritizer.Prioritize(req.Platforms, req.Country)
	queries := s.queries.Build(req.Domain, req.TargetAudience, req.Country, weights)
	if len(queries) > MaxQueries {
		queries = queries[:MaxQueries]
	}

	raw := s.runQueries(ctx, queries, req)
	unique := Dedup(raw)

	var profiles []models.SearchResult
	for _, result := range unique {
		if s.classifier.IsProfile(result.Link) {
			profiles = append(profiles, result)
		} else {
			logrus.Debugf("Filtered out non-profile: %s", result.Link)
		}
	}
	logrus.Infof("Filtered to %d profile pages from %d total results", len(profiles), len(unique))

	filtered := []models.ScoredCandidate{}
	for _, result := range profiles {
		candidate := s.scorer.Rate(result, req.Domain, req.TargetAudience)
		if candidate.RelevanceScore >= MinRelevanceScore {
			filtered = append(filtered, candidate)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].RelevanceScore > filtered[j].RelevanceScore
	})

	final := filtered
	if len(final) > req.NumResults {
		final = final[:req.NumResults]
	}

	candidatesByStage.WithLabelValues("scanned").Add(float64(len(unique)))
	candidatesByStage.WithLabelValues("profile").Add(float64(len(profiles)))
	candidatesByStage.WithLabelValues("relevant").Add(float64(len(filtered)))

	logrus.Infof("Found %d relevant influencer profiles", len(final))

	return &models.DiscoveryResult{
		Influencers:        final,
		Count:              len(final),
		Domain:             req.Domain,
		TargetAudience:     req.TargetAudience,
		SearchQueriesUsed:  queries,
		Country:            req.Country,
		RecentDays:         req.RecentDays,
		PlatformPriorities: weights,
		Metadata: models.DiscoveryMetadata{
			TotalScanned:         len(unique),
			ProfilesFound:        len(profiles),
			AfterRelevanceFilter: len(filtered),
		},
	}
}

// runQueries returns all results in query order, regardless of completion order.
func (s *Service) runQueries(ctx context.Context, queries []string, req Request) []models.SearchResult {
	perQuery := make([][]models.SearchResult, len(queries))

	searchOne := func(i int) {
		perQuery[i] = s.searcher.Search(ctx, search.Query{
			Text:        queries[i],
			Limit:       req.NumResults,
			Country:     req.Country,
			RecencyDays: req.RecentDays,
		})
	}

	if s.concurrent {
		var wg sync.WaitGroup
		for i := range queries {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				searchOne(idx)
			}(i)
		}
		wg.Wait()
	} else {
		for i := range queries {
			searchOne(i)
		}
	}

	var all []models.SearchResult
	for _, results := range perQuery {
		all = append(all, results...)
	}
	return all
}

// Dedup drops results with an empty or repeated link, keeping the first occurrence.
func Dedup(results []models.SearchResult) []models.SearchResult {
	seen := make(map[string]bool)
	unique := []models.SearchResult{}

	for _, result := range results {
		if result.Link == "" || seen[result.Link] {
			continue
		}
		seen[result.Link] = true
		unique = append(unique, result)
	}

	return unique
}

// Analyze resolves strategy defaults, runs discovery and attaches insights
// and recommendations.
func (s *Service) Analyze(ctx context.Context, strategy models.Strategy) (*models.Analysis, error) {
	domain := strategy.Domain
	if domain == "" {
		if words := strings.Fields(strategy.Product); len(words) > 0 {
			domain = strings.Join(words[:min(3, len(words))], " ")
		} else {
			domain = "general"
		}
		logrus.Infof("Domain extracted from product: %s", domain)
	}

	audience := strategy.Audience
	if audience == "" {
		audience = "general audience"
	}

	domain = strings.TrimSpace(domain)
	audience = strings.TrimSpace(audience)
	if domain == "" || audience == "" {
		logrus.Warn("Missing domain or audience")
		return nil, fmt.Errorf("analyze strategy: %w", ErrInvalidRequest)
	}

	platforms := strategy.Platforms
	if platforms == nil {
		platforms = []string{}
	}

	result := s.Discover(ctx, Request{
		Domain:         domain,
		TargetAudience: audience,
		Platforms:      platforms,
		Country:        strategy.Country,
		RecentDays:     strategy.RecentDays,
		NumResults:     strategy.NumResults,
	})

	return &models.Analysis{
		Status:          "success",
		Domain:          domain,
		TargetAudience:  audience,
		Influencers:     result.Influencers,
		Insights:        Summarize(result),
		Recommendations: Recommend(result, platforms),
		Filters: models.Filters{
			Country:    strategy.Country,
			RecentDays: strategy.RecentDays,
			Platforms:  platforms,
		},
		Result: result,
	}, nil
}
