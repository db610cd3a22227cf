package indeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhound-ingest/internal/config"
	"jobhound-ingest/internal/sources"
	"jobhound-ingest/pkg/models"
)

const feedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>software engineer Jobs</title>
    <item>
      <title>Senior React Developer</title>
      <link>https://www.indeed.com/viewjob?jk=abc123def456&amp;from=rss</link>
      <description>&lt;b&gt;Acme Corp&lt;/b&gt; is hiring. Build React and TypeScript frontends with GraphQL. - Austin, TX</description>
      <pubDate>Mon, 24 Aug 2026 09:30:00 +0000</pubDate>
    </item>
    <item>
      <title>DevOps Engineer</title>
      <link>https://www.indeed.com/viewjob?from=rss</link>
      <description>Kubernetes and Terraform work on AWS. - Remote</description>
      <pubDate>not a date</pubDate>
    </item>
    <item>
      <title></title>
      <link>https://www.indeed.com/viewjob?jk=skipme</link>
      <description>Item without a title should be dropped.</description>
    </item>
  </channel>
</rss>`

func testConfig(feedURL string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Sources.Indeed.FeedURL = feedURL
	cfg.Sources.RateLimit = 0
	return cfg
}

func TestFetchMapsFeedItems(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(feedFixture))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	adapter := New(cfg, sources.NewFetchClient(cfg))

	candidates, err := adapter.Fetch(context.Background(), sources.Query{
		Keyword:  "software engineer",
		Location: "Texas",
	})
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Contains(t, gotQuery, "q=software+engineer")
	assert.Contains(t, gotQuery, "l=Texas")

	first := candidates[0]
	assert.Equal(t, "Senior React Developer", first.Title)
	assert.Equal(t, "Acme Corp", first.CompanyName)
	assert.Equal(t, "indeed_abc123def456", first.SourceID)
	assert.Equal(t, models.SourceIndeedRSS, first.Source)
	assert.Equal(t, "Austin", first.Location.City)
	assert.Equal(t, "TX", first.Location.State)
	assert.Equal(t, "US", first.Location.Country)
	assert.Equal(t, "Frontend Development", first.Category)
	assert.Contains(t, first.Skills, "React")
	assert.Contains(t, first.Skills, "TypeScript")
	assert.NotContains(t, first.Description, "<b>")
	assert.Equal(t, 2026, first.DatePosted.Year())

	second := candidates[1]
	assert.Equal(t, "Company not specified", second.CompanyName)
	assert.True(t, second.Location.Remote)
	assert.True(t, strings.HasPrefix(second.SourceID, "indeed_"))
	assert.NotEqual(t, "indeed_", second.SourceID)
	assert.Equal(t, "DevOps Engineer", second.Title)
	assert.Equal(t, "DevOps", second.Category)
}

func TestFetchFeedUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	adapter := New(cfg, sources.NewFetchClient(cfg))

	_, err := adapter.Fetch(context.Background(), sources.Query{Keyword: "go"})
	require.Error(t, err)
	assert.ErrorIs(t, err, sources.ErrSourceUnavailable)
}

func TestFetchMalformedFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not a feed"))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	adapter := New(cfg, sources.NewFetchClient(cfg))

	_, err := adapter.Fetch(context.Background(), sources.Query{Keyword: "go"})
	require.Error(t, err)
}
