package discovery

import (
	"fmt"
	"sort"
	"strings"

	"github.com/campaignkit/campaign-agents/internal/models"
)

// distributionPlatforms lists the platforms tallied in insights, in tie-break order
func distributionPlatforms() []string {
	return []string{"instagram", "youtube", "tiktok", "twitter", "linkedin"}
}

// Summarize derives aggregate statistics from a discovery result
func Summarize(result *models.DiscoveryResult) models.Insights {
	influencers := result.Influencers

	platforms := distributionPlatforms()
	distribution := make(map[string]int, len(platforms))
	for _, platform := range platforms {
		distribution[platform] = 0
	}

	total := 0.0
	highConfidence := 0
	for _, inf := range influencers {
		link := strings.ToLower(inf.Link)
		for _, platform := range platforms {
			if strings.Contains(link, platform) {
				distribution[platform]++
			}
		}
		total += inf.RelevanceScore
		if inf.Confidence == models.ConfidenceHigh {
			highConfidence++
		}
	}

	average := 0.0
	if len(influencers) > 0 {
		average = round2(total / float64(len(influencers)))
	}

	return models.Insights{
		TotalInfluencersFound: len(influencers),
		PlatformDistribution:  distribution,
		RecommendedPlatforms:  topPlatforms(platforms, distribution, 3),
		AverageRelevanceScore: average,
		HighConfidenceCount:   highConfidence,
		SearchEffectiveness:   effectiveness(len(influencers)),
	}
}

// topPlatforms returns up to n platforms with a non-zero count, most frequent
// first; ties keep the distribution order.
func topPlatforms(platforms []string, distribution map[string]int, n int) []string {
	ranked := make([]string, len(platforms))
	copy(ranked, platforms)
	sort.SliceStable(ranked, func(i, j int) bool {
		return distribution[ranked[i]] > distribution[ranked[j]]
	})

	top := []string{}
	for _, platform := range ranked[:n] {
		if distribution[platform] > 0 {
			top = append(top, platform)
		}
	}
	return top
}

func effectiveness(count int) string {
	switch {
	case count >= 5:
		return "high"
	case count >= 3:
		return "medium"
	default:
		return "low"
	}
}

// Recommend builds the fixed recommendation sentences for a result and the
// platforms the campaign asked for.
func Recommend(result *models.DiscoveryResult, platforms []string) []string {
	var recommendations []string
	count := len(result.Influencers)

	switch {
	case count >= 5:
		high := 0
		for _, inf := range result.Influencers {
			if inf.Confidence == models.ConfidenceHigh {
				high++
			}
		}
		recommendations = append(recommendations, fmt.Sprintf(
			"Found %d relevant influencers (%d high-confidence). Review top 3-5 for collaboration.", count, high))
	case count >= 3:
		recommendations = append(recommendations, fmt.Sprintf(
			"Found %d potential influencers. Verify relevance and engagement before outreach.", count))
	default:
		recommendations = append(recommendations,
			"Limited results found. Consider broadening domain or trying different platforms.")
	}

	requested := make(map[string]bool, len(platforms))
	for _, p := range platforms {
		requested[strings.ToLower(strings.TrimSpace(p))] = true
	}

	if requested["instagram"] {
		recommendations = append(recommendations,
			"Instagram: Prioritize micro-influencers (10k-100k) with authentic engagement.")
	}
	if requested["youtube"] {
		recommendations = append(recommendations,
			"YouTube: Look for creators with consistent upload schedules and engaged comment sections.")
	}
	if requested["twitter"] || requested["linkedin"] {
		recommendations = append(recommendations,
			"Twitter/LinkedIn: Focus on thought leaders who regularly discuss your domain topics.")
	}

	return append(recommendations,
		"Always verify: (1) Content alignment, (2) Audience demographics, (3) Engagement authenticity.")
}
