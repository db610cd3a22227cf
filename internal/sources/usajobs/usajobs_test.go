package usajobs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhound-ingest/internal/config"
	"jobhound-ingest/internal/sources"
	"jobhound-ingest/pkg/models"
)

const searchFixture = `{
  "SearchResult": {
    "SearchResultItems": [
      {
        "MatchedObjectDescriptor": {
          "PositionID": "ABC-24-12345",
          "PositionTitle": "IT Specialist (Security)",
          "OrganizationName": "Department of the Treasury",
          "PositionLocationDisplay": "Washington, DC",
          "QualificationSummary": "Experience with Python and AWS required.",
          "ApplyURI": ["https://www.usajobs.gov/job/789"],
          "PublicationStartDate": "2026-08-20T00:00:00.0000000",
          "PositionRemuneration": [
            {"MinimumRange": "99200.0", "MaximumRange": "153354.0"}
          ]
        }
      },
      {
        "MatchedObjectDescriptor": {
          "PositionID": "",
          "PositionTitle": "Program Analyst",
          "OrganizationName": "",
          "PositionLocationDisplay": "Anywhere in the U.S. (remote job)",
          "QualificationSummary": "Analyze program data.",
          "PositionRemuneration": []
        }
      },
      {
        "MatchedObjectDescriptor": {
          "PositionTitle": ""
        }
      }
    ]
  }
}`

func testConfig(apiURL, apiKey string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Sources.USAJobs.APIURL = apiURL
	cfg.Sources.USAJobs.APIKey = apiKey
	cfg.Sources.USAJobs.Email = "ops@example.com"
	cfg.Sources.RateLimit = 0
	return cfg
}

func TestFetchMapsSearchResults(t *testing.T) {
	var gotAuth, gotAgent, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization-Key")
		gotAgent = r.Header.Get("User-Agent")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchFixture))
	}))
	defer server.Close()

	cfg := testConfig(server.URL, "test-key")
	adapter := New(cfg, sources.NewFetchClient(cfg))

	candidates, err := adapter.Fetch(context.Background(), sources.Query{Keyword: "security"})
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "test-key", gotAuth)
	assert.Equal(t, "ops@example.com", gotAgent)
	assert.Contains(t, gotQuery, "Keyword=security")
	assert.Contains(t, gotQuery, "DatePosted=1")

	first := candidates[0]
	assert.Equal(t, "IT Specialist (Security)", first.Title)
	assert.Equal(t, "Department of the Treasury", first.CompanyName)
	assert.Equal(t, "usajobs_ABC-24-12345", first.SourceID)
	assert.Equal(t, models.SourceUSAJobs, first.Source)
	assert.Equal(t, "Washington", first.Location.City)
	assert.Equal(t, "DC", first.Location.State)
	assert.Equal(t, "US", first.Location.Country)
	assert.Equal(t, "https://www.usajobs.gov/job/789", first.ApplicationURL)
	require.NotNil(t, first.Salary)
	assert.Equal(t, 99200, first.Salary.Min)
	assert.Equal(t, 153354, first.Salary.Max)
	assert.Equal(t, "USD", first.Salary.Currency)
	assert.Equal(t, models.PeriodYearly, first.Salary.Period)
	assert.Contains(t, first.Skills, "Python")
	assert.Equal(t, 20, first.DatePosted.Day())

	second := candidates[1]
	assert.Equal(t, "US Government", second.CompanyName)
	assert.True(t, second.Location.Remote)
	assert.Nil(t, second.Salary)
	assert.NotEmpty(t, second.SourceID)
}

func TestFetchWithoutAPIKeySkips(t *testing.T) {
	cfg := testConfig("http://unused.invalid", "")
	adapter := New(cfg, sources.NewFetchClient(cfg))

	candidates, err := adapter.Fetch(context.Background(), sources.Query{Keyword: "go"})
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestFetchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	cfg := testConfig(server.URL, "test-key")
	adapter := New(cfg, sources.NewFetchClient(cfg))

	_, err := adapter.Fetch(context.Background(), sources.Query{Keyword: "go"})
	require.Error(t, err)
	assert.ErrorIs(t, err, sources.ErrSourceUnavailable)
}
