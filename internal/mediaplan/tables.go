package mediaplan

// Share of each age group using a platform
func platformUsage() map[string]map[string]float64 {
	return map[string]map[string]float64{
		"13-17": {"TikTok": 0.67, "Instagram": 0.62, "Snapchat": 0.59, "YouTube": 0.95, "Twitter": 0.23, "Facebook": 0.32},
		"18-24": {"Instagram": 0.76, "TikTok": 0.61, "YouTube": 0.93, "Twitter": 0.42, "Snapchat": 0.48, "LinkedIn": 0.31, "Facebook": 0.71},
		"25-34": {"Instagram": 0.71, "Facebook": 0.77, "LinkedIn": 0.59, "Twitter": 0.44, "YouTube": 0.91, "TikTok": 0.38, "Pinterest": 0.35},
		"35-44": {"Facebook": 0.73, "LinkedIn": 0.46, "Instagram": 0.57, "YouTube": 0.87, "Twitter": 0.35, "Pinterest": 0.42},
		"45-54": {"Facebook": 0.70, "LinkedIn": 0.34, "YouTube": 0.83, "Pinterest": 0.38, "Instagram": 0.43, "Twitter": 0.27},
		"55+":   {"Facebook": 0.68, "YouTube": 0.79, "Pinterest": 0.32, "LinkedIn": 0.24, "Instagram": 0.33},
	}
}

// checked in order, first match wins
func ageRules() []ageRule {
	return []ageRule{
		{"13-17", []string{"teen", "teenager", "high school", "adolescent"}},
		{"18-24", []string{"college", "university", "student", "gen z", "young adult"}},
		{"25-34", []string{"millennial", "young professional", "20s", "30s"}},
		{"35-44", []string{"professional", "parent", "40s", "middle age"}},
		{"45-54", []string{"50s", "mature", "established"}},
		{"55+", []string{"senior", "retiree", "60+", "boomer"}},
	}
}

func domainOrder() []string {
	return []string{
		"fashion", "beauty", "tech", "food", "fitness", "travel", "education",
		"business", "gaming", "sustainability", "finance", "health", "parenting", "lifestyle",
	}
}

func synonymRules() []synonymRule {
	return []synonymRule{
		{"fashion", []string{"clothing", "apparel"}},
		{"beauty", []string{"makeup", "cosmetic"}},
		{"tech", []string{"technology", "software", "gadget"}},
		{"food", []string{"restaurant", "cooking", "recipe"}},
		{"fitness", []string{"workout", "gym", "exercise"}},
		{"sustainability", []string{"eco", "green", "sustainable"}},
		{"finance", []string{"invest", "money", "banking"}},
	}
}

func domainPlatforms() map[string][]string {
	return map[string][]string{
		"fashion":        {"Instagram", "Pinterest", "TikTok", "YouTube"},
		"beauty":         {"Instagram", "TikTok", "YouTube", "Pinterest"},
		"tech":           {"YouTube", "Twitter", "LinkedIn", "Reddit"},
		"food":           {"Instagram", "TikTok", "Pinterest", "YouTube"},
		"fitness":        {"Instagram", "YouTube", "TikTok"},
		"travel":         {"Instagram", "YouTube", "Pinterest", "TikTok"},
		"education":      {"YouTube", "LinkedIn", "Twitter", "Instagram"},
		"business":       {"LinkedIn", "Twitter", "YouTube", "Facebook"},
		"gaming":         {"YouTube", "Twitch", "Discord", "Twitter", "TikTok"},
		"sustainability": {"Instagram", "YouTube", "LinkedIn", "Twitter"},
		"finance":        {"LinkedIn", "Twitter", "YouTube"},
		"health":         {"Instagram", "YouTube", "Pinterest", "Facebook"},
		"parenting":      {"Facebook", "Instagram", "Pinterest", "YouTube"},
		"lifestyle":      {"Instagram", "Pinterest", "YouTube", "TikTok"},
	}
}

func domainContent() map[string][]string {
	return map[string][]string{
		"fashion":        {"outfit posts", "styling tips", "haul videos", "lookbooks", "trend reports"},
		"beauty":         {"tutorials", "product reviews", "get ready with me", "skincare routines"},
		"tech":           {"product reviews", "tutorials", "unboxings", "comparisons", "how-to guides"},
		"food":           {"recipes", "cooking videos", "food photography", "restaurant reviews"},
		"fitness":        {"workout videos", "form checks", "transformation stories", "nutrition tips"},
		"travel":         {"destination guides", "travel vlogs", "itineraries", "travel tips"},
		"education":      {"explainer videos", "tutorials", "study tips", "course previews"},
		"business":       {"thought leadership", "case studies", "tips & insights", "industry news"},
		"gaming":         {"gameplay", "reviews", "walkthroughs", "live streams", "commentary"},
		"sustainability": {"eco tips", "product reviews", "lifestyle changes", "educational content"},
		"finance":        {"market analysis", "investment tips", "financial literacy", "news commentary"},
		"health":         {"wellness tips", "mental health", "medical info", "product reviews"},
		"parenting":      {"parenting tips", "product reviews", "family vlogs", "educational content"},
		"lifestyle":      {"day in life", "hauls", "home tours", "productivity tips", "aesthetic content"},
	}
}

// Posting windows in 24h hours
func platformPostingTimes() map[string]postingWindows {
	return map[string]postingWindows{
		"Instagram": {
			weekday: []hourRange{{9, 11}, {13, 15}, {19, 21}},
			weekend: []hourRange{{11, 13}, {19, 21}},
		},
		"TikTok": {
			weekday: []hourRange{{6, 9}, {12, 14}, {19, 23}},
			weekend: []hourRange{{9, 11}, {14, 18}, {19, 23}},
		},
		"Facebook": {
			weekday: []hourRange{{9, 10}, {12, 14}, {15, 16}},
			weekend: []hourRange{{12, 14}, {16, 18}},
		},
		"LinkedIn": {
			weekday: []hourRange{{7, 9}, {12, 13}, {17, 18}},
		},
		"Twitter": {
			weekday: []hourRange{{8, 10}, {12, 13}, {17, 18}},
			weekend: []hourRange{{9, 11}, {19, 21}},
		},
		"YouTube": {
			weekday: []hourRange{{14, 16}, {18, 22}},
			weekend: []hourRange{{9, 11}, {14, 18}},
		},
		"Pinterest": {
			weekday: []hourRange{{14, 16}, {20, 23}},
			weekend: []hourRange{{19, 23}},
		},
	}
}

func domainGrowth() map[string][]string {
	return map[string][]string{
		"fashion": {
			"collaborate with micro-influencers",
			"use trending audio/hashtags",
			"post outfit inspiration consistently",
			"engage with fashion communities",
			"run giveaways with partner brands",
		},
		"beauty": {
			"create tutorial content",
			"partner with beauty influencers",
			"use before/after content",
			"leverage user-generated content",
			"host live makeup sessions",
		},
		"tech": {
			"create in-depth reviews",
			"share industry insights",
			"engage in tech communities",
			"collaborate with tech reviewers",
			"host Q&A sessions",
		},
		"food": {
			"share quick recipe videos",
			"use trending food hashtags",
			"partner with food bloggers",
			"engage with food communities",
			"run recipe contests",
		},
		"fitness": {
			"share transformation stories",
			"post workout challenges",
			"collaborate with fitness influencers",
			"create workout series",
			"host live workout sessions",
		},
		"default": {
			"post consistently (3-5x per week)",
			"engage authentically with followers",
			"use relevant hashtags strategically",
			"collaborate with niche influencers",
			"analyze and optimize content performance",
		},
	}
}

func domainMistakes() map[string][]string {
	return map[string][]string{
		"fashion": {
			"inconsistent aesthetic",
			"ignoring seasonal trends",
			"over-editing photos (unrealistic)",
			"not crediting designers/brands",
		},
		"beauty": {
			"poor lighting in tutorials",
			"not disclosing sponsored content",
			"making unrealistic claims",
			"ignoring ingredient transparency",
		},
		"tech": {
			"overly technical jargon",
			"not testing products thoroughly",
			"biased reviews without disclosure",
			"ignoring user experience",
		},
		"default": {
			"posting inconsistently",
			"ignoring audience engagement",
			"using too many hashtags",
			"buying followers/engagement",
			"copying competitors exactly",
			"not tracking analytics",
		},
	}
}
