package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/campaignkit/campaign-agents/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const (
	baseURL         = "https://www.googleapis.com"
	maxQueries      = 3
	maxStatsIDs     = 50
	searchPageSize  = 10
	defaultCountry  = "IN"
	defaultMinSubs  = 10000
	defaultMaxSubs  = 500000
	defaultMaxItems = 8
)

// ErrNotConfigured is returned when no API key is available
var ErrNotConfigured = errors.New("youtube API key not configured")

// Discoverer finds YouTube channels through the YouTube Data API v3
type Discoverer struct {
	apiKey string
	client *resty.Client
	// pause between search calls to stay under the API rate limit
	pause time.Duration
}

// Request describes a channel discovery run
type Request struct {
	Domain         string `json:"domain"`
	Audience       string `json:"audience,omitempty"`
	Country        string `json:"country,omitempty"`
	MinSubscribers int64  `json:"min_followers,omitempty"`
	MaxSubscribers int64  `json:"max_followers,omitempty"`
	MaxResults     int    `json:"max_results,omitempty"`
}

// Channel is a YouTube channel in the shared influencer format
type Channel struct {
	Name               string `json:"name"`
	Platform           string `json:"platform"`
	Niche              string `json:"niche"`
	Followers          int64  `json:"followers"`
	FollowersFormatted string `json:"followers_formatted"`
	VideoCount         int64  `json:"video_count"`
	ViewCount          int64  `json:"view_count"`
	URL                string `json:"url"`
	Thumbnail          string `json:"thumbnail,omitempty"`
}

type channelSearchResponse struct {
	Items []struct {
		ID struct {
			ChannelID string `json:"channelId"`
		} `json:"id"`
	} `json:"items"`
}

type channelListResponse struct {
	Items []channelItem `json:"items"`
}

type channelItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Thumbnails  struct {
			Default struct {
				URL string `json:"url"`
			} `json:"default"`
		} `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		SubscriberCount       string `json:"subscriberCount"`
		HiddenSubscriberCount bool   `json:"hiddenSubscriberCount"`
		VideoCount            string `json:"videoCount"`
		ViewCount             string `json:"viewCount"`
	} `json:"statistics"`
}

// Option customizes a Discoverer
type Option func(*Discoverer)

// WithBaseURL points the discoverer at a different API host
func WithBaseURL(url string) Option {
	return func(d *Discoverer) {
		d.client.SetBaseURL(url)
	}
}

// WithPause sets the delay between channel searches
func WithPause(pause time.Duration) Option {
	return func(d *Discoverer) {
		d.pause = pause
	}
}

// NewDiscoverer creates a new YouTube channel discoverer
func NewDiscoverer(apiKey string, opts ...Option) (*Discoverer, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	d := &Discoverer{
		apiKey: apiKey,
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(10 * time.Second).
			SetHeader("User-Agent", "Campaign-Agents/1.0"),
		pause: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Discover searches channels for the request, keeps those inside the
// subscriber range and returns at most MaxResults of them.
func (d *Discoverer) Discover(ctx context.Context, req Request) ([]Channel, error) {
	applyDefaults(&req)

	logrus.Infof("YouTube discovery: domain=%s, audience=%s, country=%s, subscribers=%d-%d",
		req.Domain, req.Audience, req.Country, req.MinSubscribers, req.MaxSubscribers)

	var channelIDs []string
	seen := make(map[string]bool)

	for i, query := range d.buildQueries(req) {
		if i > 0 && d.pause > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(d.pause):
			}
		}

		ids, err := d.searchChannels(ctx, query, req.Country)
		if err != nil {
			logrus.Errorf("YouTube channel search failed for query '%s': %v", query, err)
			continue
		}

		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				channelIDs = append(channelIDs, id)
			}
		}
	}

	if len(channelIDs) == 0 {
		logrus.Info("No YouTube channels found")
		return []Channel{}, nil
	}

	items, err := d.channelStats(ctx, channelIDs)
	if err != nil {
		return nil, err
	}

	channels := []Channel{}
	for _, item := range items {
		channel, ok := toChannel(item, req.MinSubscribers, req.MaxSubscribers)
		if !ok {
			continue
		}
		channels = append(channels, channel)
	}
	logrus.Infof("%d channels in range %d-%d subscribers", len(channels), req.MinSubscribers, req.MaxSubscribers)

	if len(channels) > req.MaxResults {
		channels = channels[:req.MaxResults]
	}
	return channels, nil
}

func applyDefaults(req *Request) {
	if req.Country == "" {
		req.Country = defaultCountry
	}
	if req.MinSubscribers <= 0 {
		req.MinSubscribers = defaultMinSubs
	}
	if req.MaxSubscribers <= 0 {
		req.MaxSubscribers = defaultMaxSubs
	}
	if req.MaxResults <= 0 {
		req.MaxResults = defaultMaxItems
	}
}

func (d *Discoverer) buildQueries(req Request) []string {
	countryName := models.CountryName(req.Country)

	var queries []string
	if strings.TrimSpace(req.Audience) != "" {
		queries = []string{
			fmt.Sprintf("%s %s %s", req.Domain, req.Audience, countryName),
			fmt.Sprintf("%s %s", req.Audience, req.Domain),
			fmt.Sprintf("%s tips %s", req.Domain, countryName),
		}
	} else {
		queries = []string{
			fmt.Sprintf("%s %s", req.Domain, countryName),
			fmt.Sprintf("%s creators", req.Domain),
			fmt.Sprintf("%s influencers", req.Domain),
		}
	}
	return queries[:maxQueries]
}

func (d *Discoverer) searchChannels(ctx context.Context, query, region string) ([]string, error) {
	resp, err := d.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part":       "snippet",
			"q":          query,
			"type":       "channel",
			"regionCode": region,
			"maxResults": strconv.Itoa(searchPageSize),
			"key":        d.apiKey,
		}).
		Get("/youtube/v3/search")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() == 403 {
		return nil, fmt.Errorf("youtube API quota exceeded or invalid API key")
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("youtube API returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var searchResp channelSearchResponse
	if err := json.Unmarshal(resp.Body(), &searchResp); err != nil {
		return nil, fmt.Errorf("failed to parse YouTube search response: %w", err)
	}

	var ids []string
	for _, item := range searchResp.Items {
		if item.ID.ChannelID != "" {
			ids = append(ids, item.ID.ChannelID)
		}
	}
	logrus.Debugf("YouTube search '%s' found %d channels", query, len(ids))
	return ids, nil
}

func (d *Discoverer) channelStats(ctx context.Context, ids []string) ([]channelItem, error) {
	if len(ids) > maxStatsIDs {
		ids = ids[:maxStatsIDs]
	}

	resp, err := d.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part": "statistics,snippet",
			"id":   strings.Join(ids, ","),
			"key":  d.apiKey,
		}).
		Get("/youtube/v3/channels")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel stats: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("youtube channels API returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var listResp channelListResponse
	if err := json.Unmarshal(resp.Body(), &listResp); err != nil {
		return nil, fmt.Errorf("failed to parse YouTube channels response: %w", err)
	}
	return listResp.Items, nil
}

func toChannel(item channelItem, minSubs, maxSubs int64) (Channel, bool) {
	if item.Statistics.HiddenSubscriberCount {
		return Channel{}, false
	}

	subscribers, err := parseCount(item.Statistics.SubscriberCount)
	if err != nil || subscribers < minSubs || subscribers > maxSubs {
		return Channel{}, false
	}

	videos, _ := parseCount(item.Statistics.VideoCount)
	views, _ := parseCount(item.Statistics.ViewCount)

	return Channel{
		Name:               orDefault(item.Snippet.Title, "Unknown"),
		Platform:           "YouTube",
		Niche:              truncateRunes(item.Snippet.Description, 100),
		Followers:          subscribers,
		FollowersFormatted: FormatCount(subscribers),
		VideoCount:         videos,
		ViewCount:          views,
		URL:                fmt.Sprintf("https://youtube.com/channel/%s", item.ID),
		Thumbnail:          item.Snippet.Thumbnails.Default.URL,
	}, true
}

func parseCount(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

// FormatCount renders a count with a K or M suffix
func FormatCount(n int64) string {
	switch {
	case n >= 1000000:
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	case n >= 1000:
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	default:
		return strconv.FormatInt(n, 10)
	}
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
