package discovery

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/campaignkit/campaign-agents/internal/models"
)

const (
	highPriorityWeight   = 4
	mediumPriorityWeight = 2
	maxAudienceWords     = 3
)

// QueryBuilder turns a campaign context into search query strings
type QueryBuilder struct {
	agedRange    *regexp.Regexp
	bareRange    *regexp.Regexp
}

// NewQueryBuilder creates a query builder
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{
		agedRange: regexp.MustCompile(`\baged?\s+\d{1,2}[-–]\d{1,2}\b`),
		bareRange: regexp.MustCompile(`\b\d{1,2}[-–]\d{1,2}\b`),
	}
}

// SimplifyAudience strips age ranges and keeps the first three words longer
// than two characters.
func (b *QueryBuilder) SimplifyAudience(audience string) string {
	short := b.agedRange.ReplaceAllString(audience, "")
	short = b.bareRange.ReplaceAllString(short, "")

	var words []string
	for _, w := range strings.Fields(short) {
		if utf8.RuneCountInString(w) > 2 {
			words = append(words, w)
		}
		if len(words) == maxAudienceWords {
			break
		}
	}
	return strings.Join(words, " ")
}

// CountryName maps a country code to its display name, passing unknown codes through.
func (b *QueryBuilder) CountryName(country string) string {
	return models.CountryName(country)
}

// Build returns the ordered query list: site-scoped queries per platform in
// weight order, then three general queries.
func (b *QueryBuilder) Build(domain, audience, country string, weights models.PlatformWeights) []string {
	audienceShort := b.SimplifyAudience(audience)
	var queries []string

	for _, pw := range weights {
		switch {
		case pw.Weight >= highPriorityWeight:
			queries = append(queries,
				fmt.Sprintf("site:%s %s influencer %s", pw.Platform, domain, country),
				fmt.Sprintf("site:%s %s %s creator", pw.Platform, domain, audienceShort),
				fmt.Sprintf("site:%s %s %s", pw.Platform, domain, audienceShort),
			)
		case pw.Weight >= mediumPriorityWeight:
			queries = append(queries, fmt.Sprintf("site:%s %s %s", pw.Platform, domain, country))
		}
		// weight 0 and 1 platforms are skipped
	}

	countryName := b.CountryName(country)
	queries = append(queries,
		fmt.Sprintf("%s influencer %s %s", domain, countryName, audienceShort),
		fmt.Sprintf("%s creator %s", domain, audienceShort),
		fmt.Sprintf("best %s influencers %s", domain, countryName),
	)

	for i, q := range queries {
		queries[i] = strings.Join(strings.Fields(q), " ")
	}
	return queries
}
