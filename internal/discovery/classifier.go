package discovery

import (
	"regexp"
	"strings"
)

// URLClassifier tells social profile pages apart from individual posts
type URLClassifier struct {
	postMarkers     []string
	profilePatterns []*regexp.Regexp
}

// NewURLClassifier creates a classifier for Instagram, TikTok, Twitter, LinkedIn and YouTube
func NewURLClassifier() *URLClassifier {
	return &URLClassifier{
		postMarkers: []string{
			"/p/",       // Instagram posts
			"/reel/",    // Instagram reels
			"/status/",  // Twitter posts
			"/Posts/",   // Twitter posts page
			"/video/",   // TikTok videos
			"/watch?v=", // YouTube videos
			"/post/",    // LinkedIn posts
		},
		profilePatterns: []*regexp.Regexp{
			regexp.MustCompile(`^https?://(www\.)?instagram\.com/[A-Za-z0-9_.-]+/?$`),
			regexp.MustCompile(`^https?://(www\.)?tiktok\.com/@[\w.-]+/?$`),
			regexp.MustCompile(`^https?://(www\.)?twitter\.com/[A-Za-z0-9_]+/?$`),
			regexp.MustCompile(`^https?://(www\.)?linkedin\.com/in/[A-Za-z0-9_%-]+/?$`),
			regexp.MustCompile(`^https?://(www\.)?youtube\.com/(?:channel/|c/|user/|@)[A-Za-z0-9_\-@]+/?$`),
		},
	}
}

// IsProfile reports whether link is the root page of a social account.
// Post markers are checked first and always win.
func (c *URLClassifier) IsProfile(link string) bool {
	if link == "" {
		return false
	}

	for _, marker := range c.postMarkers {
		if strings.Contains(link, marker) {
			return false
		}
	}

	for _, pattern := range c.profilePatterns {
		if pattern.MatchString(link) {
			return true
		}
	}

	return false
}
