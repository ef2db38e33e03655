package discovery

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/campaignkit/campaign-agents/internal/models"
)

// Scorer computes a 0-10 relevance score for a search result
type Scorer struct {
	classifier      *URLClassifier
	stopWords       map[string]bool
	influencerTerms []string
}

// NewScorer creates a scorer that uses classifier for the profile bonus
func NewScorer(classifier *URLClassifier) *Scorer {
	return &Scorer{
		classifier: classifier,
		stopWords: map[string]bool{
			"a": true, "an": true, "the": true, "for": true, "in": true, "on": true,
			"to": true, "with": true, "and": true, "or": true, "of": true,
		},
		influencerTerms: []string{"influencer", "creator", "content creator", "youtuber", "blogger", "vlogger"},
	}
}

// Score returns the clamped, unrounded relevance of result.
//
// Weights: domain match ratio x4, audience match ratio x2, +2 for a profile
// link, +1 for any influencer term. A result that matches none of a non-empty
// domain keyword set scores 0.
func (s *Scorer) Score(result models.SearchResult, domain, audience string) float64 {
	combined := strings.ToLower(result.Title) + " " + strings.ToLower(result.Snippet)

	domainKeywords := s.keywords(domain)
	audienceKeywords := s.keywords(audience)

	domainMatches := countMatches(domainKeywords, combined)
	if len(domainKeywords) > 0 && domainMatches == 0 {
		return 0.0
	}

	score := 0.0
	if len(domainKeywords) > 0 {
		score += float64(domainMatches) / float64(len(domainKeywords)) * 4
	}

	if len(audienceKeywords) > 0 {
		score += float64(countMatches(audienceKeywords, combined)) / float64(len(audienceKeywords)) * 2
	}

	if s.classifier.IsProfile(strings.ToLower(result.Link)) {
		score += 2
	}

	for _, term := range s.influencerTerms {
		if strings.Contains(combined, term) {
			score++
			break
		}
	}

	return math.Max(0, math.Min(10, score))
}

// Rate scores result and attaches the rounded score and its confidence tier.
func (s *Scorer) Rate(result models.SearchResult, domain, audience string) models.ScoredCandidate {
	return newCandidate(result, s.Score(result, domain, audience))
}

// newCandidate takes the tier from the unrounded score, so 6.996 is shown
// as 7 but stays medium.
func newCandidate(result models.SearchResult, raw float64) models.ScoredCandidate {
	return models.ScoredCandidate{
		SearchResult:   result,
		RelevanceScore: round2(raw),
		Confidence:     models.ConfidenceFor(raw),
	}
}

// keywords returns the distinct lowercase tokens of text, minus stop words
// and tokens of two characters or fewer.
func (s *Scorer) keywords(text string) []string {
	seen := make(map[string]bool)
	var keywords []string
	for _, token := range strings.Fields(strings.ToLower(text)) {
		if s.stopWords[token] || utf8.RuneCountInString(token) <= 2 || seen[token] {
			continue
		}
		seen[token] = true
		keywords = append(keywords, token)
	}
	return keywords
}

func countMatches(keywords []string, text string) int {
	matches := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			matches++
		}
	}
	return matches
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
