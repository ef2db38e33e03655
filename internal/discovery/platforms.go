package discovery

import (
	"strings"

	"github.com/campaignkit/campaign-agents/internal/models"
)

const requestedWeight = 5

// Prioritizer maps requested platforms and country to search weights
type Prioritizer struct {
	known    map[string]string
	defaults models.PlatformWeights
	// platforms that are unavailable in a country, keyed by upper-case code
	banned map[string][]string
}

// NewPrioritizer creates a prioritizer with the default platform weights
func NewPrioritizer() *Prioritizer {
	return &Prioritizer{
		known: map[string]string{
			"instagram": "instagram.com",
			"youtube":   "youtube.com",
			"tiktok":    "tiktok.com",
			"twitter":   "twitter.com",
			"x":         "twitter.com",
			"linkedin":  "linkedin.com",
			"facebook":  "facebook.com",
		},
		defaults: models.PlatformWeights{
			{Platform: "instagram.com", Weight: 5},
			{Platform: "youtube.com", Weight: 4},
			{Platform: "linkedin.com", Weight: 2},
			{Platform: "twitter.com", Weight: 2},
			{Platform: "tiktok.com", Weight: 1},
		},
		banned: map[string][]string{
			"IN": {"tiktok.com"},
		},
	}
}

// Prioritize returns per-platform weights. Requested platforms get the top
// weight in request order; the remaining defaults follow at max(1, default-2).
// Banned platforms are forced to 0 even when requested.
func (p *Prioritizer) Prioritize(requested []string, country string) models.PlatformWeights {
	banned := p.banned[strings.ToUpper(country)]

	defaults := make(models.PlatformWeights, len(p.defaults))
	copy(defaults, p.defaults)
	for _, site := range banned {
		defaults = defaults.Set(site, 0)
	}

	var weights models.PlatformWeights
	for _, name := range requested {
		if site, ok := p.known[strings.ToLower(strings.TrimSpace(name))]; ok {
			weights = weights.Set(site, requestedWeight)
		}
	}

	if len(weights) == 0 {
		return defaults
	}

	for _, pw := range defaults {
		if !weights.Has(pw.Platform) {
			weights = weights.Set(pw.Platform, max(1, pw.Weight-2))
		}
	}

	for _, site := range banned {
		weights = weights.Set(site, 0)
	}

	return weights
}
