package mediaplan

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const (
	defaultAgeGroup = "18-24"
	defaultDomain   = "lifestyle"
	defaultUsage    = 0.3
	domainBoost     = 0.1
	minPlatformFit  = 0.4
	maxPlatforms    = 5
)

// Request is the input of a media plan
type Request struct {
	Domain         string   `json:"domain"`
	TargetAudience string   `json:"target_audience"`
	Competitors    []string `json:"competitors,omitempty"`
}

// PlatformScore is a recommended platform with its fit for the audience
type PlatformScore struct {
	Platform       string  `json:"platform"`
	RelevanceScore float64 `json:"relevance_score"`
}

// PostingTimes are human-readable posting windows
type PostingTimes struct {
	Weekday []string `json:"weekday"`
	Weekend []string `json:"weekend"`
}

// CompetitorAnalysis summarizes the competitive landscape
type CompetitorAnalysis struct {
	CompetitionLevel    string   `json:"competition_level"`
	RecommendedApproach string   `json:"recommended_approach"`
	DifferentiationTips []string `json:"differentiation_tips"`
}

// Metadata records how the request was interpreted
type Metadata struct {
	InferredAgeGroup string `json:"inferred_age_group"`
	NormalizedDomain string `json:"normalized_domain"`
	TargetAudience   string `json:"target_audience"`
}

// Plan is a rule-based platform and content strategy
type Plan struct {
	RecommendedPlatforms []PlatformScore         `json:"recommended_platforms"`
	BestPostingTimes     map[string]PostingTimes `json:"best_posting_times"`
	ContentTypes         []string                `json:"content_types"`
	GrowthStrategies     []string                `json:"growth_strategies"`
	MistakesToAvoid      []string                `json:"mistakes_to_avoid"`
	CompetitorInsights   CompetitorAnalysis      `json:"competitor_insights"`
	Metadata             Metadata                `json:"metadata"`
}

type hourRange struct{ start, end int }

type postingWindows struct {
	weekday []hourRange
	weekend []hourRange
}

type ageRule struct {
	group    string
	keywords []string
}

type synonymRule struct {
	domain   string
	keywords []string
}

// Planner builds media plans from static usage and domain tables
type Planner struct {
	ageRules       []ageRule
	domainOrder    []string
	synonyms       []synonymRule
	usage          map[string]map[string]float64
	domainPlatform map[string][]string
	domainContent  map[string][]string
	postingTimes   map[string]postingWindows
	growth         map[string][]string
	mistakes       map[string][]string
}

// NewPlanner creates a planner with the built-in tables
func NewPlanner() *Planner {
	return &Planner{
		ageRules:       ageRules(),
		domainOrder:    domainOrder(),
		synonyms:       synonymRules(),
		usage:          platformUsage(),
		domainPlatform: domainPlatforms(),
		domainContent:  domainContent(),
		postingTimes:   platformPostingTimes(),
		growth:         domainGrowth(),
		mistakes:       domainMistakes(),
	}
}

// Plan generates the media plan for req
func (p *Planner) Plan(req Request) *Plan {
	ageGroup := p.InferAgeGroup(req.TargetAudience)
	domain := p.NormalizeDomain(req.Domain)

	platforms := p.domainPlatform[domain]
	recommended := p.scorePlatforms(ageGroup, platforms)

	postingTimes := make(map[string]PostingTimes, len(recommended))
	for _, rec := range recommended {
		windows := p.postingTimes[rec.Platform]
		postingTimes[rec.Platform] = PostingTimes{
			Weekday: formatWindows(windows.weekday),
			Weekend: formatWindows(windows.weekend),
		}
	}

	return &Plan{
		RecommendedPlatforms: recommended,
		BestPostingTimes:     postingTimes,
		ContentTypes:         p.domainContent[domain],
		GrowthStrategies:     lookup(p.growth, domain),
		MistakesToAvoid:      lookup(p.mistakes, domain),
		CompetitorInsights:   AnalyzeCompetitors(req.Competitors),
		Metadata: Metadata{
			InferredAgeGroup: ageGroup,
			NormalizedDomain: domain,
			TargetAudience:   req.TargetAudience,
		},
	}
}

// InferAgeGroup maps audience keywords to an age bracket, 18-24 by default.
func (p *Planner) InferAgeGroup(audience string) string {
	lower := strings.ToLower(audience)
	for _, rule := range p.ageRules {
		if containsAny(lower, rule.keywords) {
			return rule.group
		}
	}
	return defaultAgeGroup
}

// NormalizeDomain maps a free-form domain to a known category.
func (p *Planner) NormalizeDomain(domain string) string {
	lower := strings.ToLower(domain)
	for _, known := range p.domainOrder {
		if strings.Contains(lower, known) {
			return known
		}
	}
	for _, rule := range p.synonyms {
		if containsAny(lower, rule.keywords) {
			return rule.domain
		}
	}
	return defaultDomain
}

func (p *Planner) scorePlatforms(ageGroup string, platforms []string) []PlatformScore {
	usage, ok := p.usage[ageGroup]
	if !ok {
		usage = p.usage[defaultAgeGroup]
	}

	type scored struct {
		platform string
		score    float64
	}
	scores := make([]scored, 0, len(platforms))
	for _, platform := range platforms {
		base, ok := usage[platform]
		if !ok {
			base = defaultUsage
		}
		scores = append(scores, scored{platform, math.Min(base+domainBoost, 1.0)})
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	recommended := []PlatformScore{}
	for _, s := range scores {
		if s.score > minPlatformFit {
			recommended = append(recommended, PlatformScore{
				Platform:       s.platform,
				RelevanceScore: math.Round(s.score*100) / 100,
			})
		}
	}
	if len(recommended) > maxPlatforms {
		recommended = recommended[:maxPlatforms]
	}
	return recommended
}

// formatWindows renders 24h hour ranges as "9AM-11AM" style strings
func formatWindows(ranges []hourRange) []string {
	formatted := []string{}
	for _, r := range ranges {
		formatted = append(formatted, fmt.Sprintf("%s-%s", formatHour(r.start), formatHour(r.end)))
	}
	return formatted
}

func formatHour(h int) string {
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h
	if h > 12 {
		h12 = h - 12
	}
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d%s", h12, suffix)
}

// AnalyzeCompetitors grades the competition by the number of named competitors
func AnalyzeCompetitors(competitors []string) CompetitorAnalysis {
	switch n := len(competitors); {
	case n >= 6:
		return CompetitorAnalysis{
			CompetitionLevel:    "high",
			RecommendedApproach: "niche down and focus on unique value proposition",
			DifferentiationTips: []string{
				"identify underserved sub-niche",
				"create unique content format",
				"build strong community engagement",
				"focus on authenticity over perfection",
			},
		}
	case n >= 3:
		return CompetitorAnalysis{
			CompetitionLevel:    "medium",
			RecommendedApproach: "consistent quality content with strategic collaborations",
			DifferentiationTips: []string{
				"develop signature content style",
				"engage actively with audience",
				"collaborate with complementary brands",
			},
		}
	default:
		return CompetitorAnalysis{
			CompetitionLevel:    "low",
			RecommendedApproach: "establish strong presence and consistency",
			DifferentiationTips: []string{
				"be first-mover in your niche",
				"build authority through education",
				"create content library",
			},
		}
	}
}

func lookup(table map[string][]string, domain string) []string {
	if v, ok := table[domain]; ok {
		return v
	}
	return table["default"]
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
