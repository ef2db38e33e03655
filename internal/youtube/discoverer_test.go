package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var channelFixtures = map[string]string{
	"UC1": `{"id":"UC1","snippet":{"title":"Thrift Queen","description":"Sustainable fashion on a student budget","thumbnails":{"default":{"url":"https://img/1"}}},
		"statistics":{"subscriberCount":"45200","videoCount":"120","viewCount":"3400000"}}`,
	"UC2": `{"id":"UC2","snippet":{"title":"Hidden Stats","description":""},
		"statistics":{"subscriberCount":"90000","hiddenSubscriberCount":true}}`,
	"UC3": `{"id":"UC3","snippet":{"title":"Mega Fashion","description":"big"},
		"statistics":{"subscriberCount":"2500000","videoCount":"800","viewCount":"1"}}`,
	"UC4": `{"id":"UC4","snippet":{"title":"","description":"small but growing"},
		"statistics":{"subscriberCount":"12000","videoCount":"30","viewCount":"50000"}}`,
}

type fakeAPI struct {
	mu        sync.Mutex
	queries   []string
	regions   []string
	statsIDs  string
	failQuery string
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/youtube/v3/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "channel", q.Get("type"))
		assert.Equal(t, "key", q.Get("key"))

		f.mu.Lock()
		f.queries = append(f.queries, q.Get("q"))
		f.regions = append(f.regions, q.Get("regionCode"))
		f.mu.Unlock()

		if q.Get("q") == f.failQuery {
			w.WriteHeader(http.StatusForbidden)
			return
		}

		switch {
		case strings.HasPrefix(q.Get("q"), "sustainable fashion college"):
			_, _ = w.Write([]byte(`{"items":[{"id":{"channelId":"UC1"}},{"id":{"channelId":"UC2"}},{"id":{}}]}`))
		default:
			_, _ = w.Write([]byte(`{"items":[{"id":{"channelId":"UC2"}},{"id":{"channelId":"UC3"}},{"id":{"channelId":"UC4"}}]}`))
		}
	})

	mux.HandleFunc("/youtube/v3/channels", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "statistics,snippet", r.URL.Query().Get("part"))
		f.mu.Lock()
		f.statsIDs = r.URL.Query().Get("id")
		f.mu.Unlock()

		var items []string
		for _, id := range strings.Split(f.statsIDs, ",") {
			if item, ok := channelFixtures[id]; ok {
				items = append(items, item)
			}
		}
		_, _ = w.Write([]byte(`{"items":[` + strings.Join(items, ",") + `]}`))
	})

	return mux
}

func newTestDiscoverer(t *testing.T, api *fakeAPI) *Discoverer {
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)

	d, err := NewDiscoverer("key", WithBaseURL(srv.URL), WithPause(0))
	require.NoError(t, err)
	return d
}

func TestNewDiscovererRequiresKey(t *testing.T) {
	_, err := NewDiscoverer("")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestDiscover(t *testing.T) {
	api := &fakeAPI{}
	d := newTestDiscoverer(t, api)

	channels, err := d.Discover(context.Background(), Request{
		Domain:   "sustainable fashion",
		Audience: "college students",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"sustainable fashion college students India",
		"college students sustainable fashion",
		"sustainable fashion tips India",
	}, api.queries)
	assert.Equal(t, []string{"IN", "IN", "IN"}, api.regions)
	assert.Equal(t, "UC1,UC2,UC3,UC4", api.statsIDs)

	require.Len(t, channels, 2)
	assert.Equal(t, Channel{
		Name:               "Thrift Queen",
		Platform:           "YouTube",
		Niche:              "Sustainable fashion on a student budget",
		Followers:          45200,
		FollowersFormatted: "45.2K",
		VideoCount:         120,
		ViewCount:          3400000,
		URL:                "https://youtube.com/channel/UC1",
		Thumbnail:          "https://img/1",
	}, channels[0])
	assert.Equal(t, "Unknown", channels[1].Name)
	assert.Equal(t, "12.0K", channels[1].FollowersFormatted)
}

func TestDiscoverRangeAndLimit(t *testing.T) {
	api := &fakeAPI{}
	d := newTestDiscoverer(t, api)

	channels, err := d.Discover(context.Background(), Request{
		Domain:         "sustainable fashion",
		Country:        "US",
		MinSubscribers: 1000,
		MaxSubscribers: 5000000,
		MaxResults:     2,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"sustainable fashion USA",
		"sustainable fashion creators",
		"sustainable fashion influencers",
	}, api.queries)

	require.Len(t, channels, 2)
	assert.Equal(t, "https://youtube.com/channel/UC3", channels[0].URL)
	assert.Equal(t, "2.5M", channels[0].FollowersFormatted)
	assert.Equal(t, "https://youtube.com/channel/UC4", channels[1].URL)
}

func TestDiscoverSkipsFailedQueries(t *testing.T) {
	api := &fakeAPI{failQuery: "sustainable fashion college students India"}
	d := newTestDiscoverer(t, api)

	channels, err := d.Discover(context.Background(), Request{
		Domain:   "sustainable fashion",
		Audience: "college students",
	})
	require.NoError(t, err)

	assert.Len(t, api.queries, 3)
	assert.Equal(t, "UC2,UC3,UC4", api.statsIDs)
	require.Len(t, channels, 1)
	assert.Equal(t, "https://youtube.com/channel/UC4", channels[0].URL)
}

func TestDiscoverNoChannels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	d, err := NewDiscoverer("key", WithBaseURL(srv.URL), WithPause(0))
	require.NoError(t, err)

	channels, err := d.Discover(context.Background(), Request{Domain: "knitting"})
	require.NoError(t, err)
	assert.NotNil(t, channels)
	assert.Empty(t, channels)
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		n        int64
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{45200, "45.2K"},
		{999999, "1000.0K"},
		{1000000, "1.0M"},
		{2500000, "2.5M"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCount(tt.n))
	}
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 100))
	assert.Equal(t, "ab", truncateRunes("abc", 2))
	assert.Equal(t, "héllo", truncateRunes("héllo wörld", 5))
}
