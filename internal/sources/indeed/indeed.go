// Package indeed adapts the public Indeed RSS feed into job candidates.
package indeed

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"jobhound-ingest/internal/config"
	"jobhound-ingest/internal/llm/processors"
	"jobhound-ingest/internal/logging"
	"jobhound-ingest/internal/logging/types"
	"jobhound-ingest/internal/normalize"
	"jobhound-ingest/internal/sources"
	"jobhound-ingest/pkg/models"
	"jobhound-ingest/pkg/utils"
)

// Adapter fetches and maps Indeed RSS feed items.
type Adapter struct {
	config *config.Config
	client *sources.FetchClient
	logger types.Logger
}

// New creates an Indeed RSS adapter
func New(cfg *config.Config, client *sources.FetchClient) *Adapter {
	return &Adapter{
		config: cfg,
		client: client,
		logger: logging.GetGlobalLogger(),
	}
}

// Name returns the source identifier
func (a *Adapter) Name() string {
	return models.SourceIndeedRSS
}

type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

var (
	companyPattern  = regexp.MustCompile(`<b>([^<]+)</b>`)
	locationPattern = regexp.MustCompile(`- ([^-]+)$`)
	jobKeyPattern   = regexp.MustCompile(`[?&]jk=([A-Za-z0-9]+)`)
)

// Fetch pulls one page of the RSS feed for the query and maps each item
// into a candidate.
func (a *Adapter) Fetch(ctx context.Context, query sources.Query) ([]models.JobCandidate, error) {
	feedURL := fmt.Sprintf("%s?q=%s&l=%s",
		a.config.Sources.Indeed.FeedURL,
		url.QueryEscape(query.Keyword),
		url.QueryEscape(query.Location),
	)

	a.logger.Info("Fetching Indeed RSS feed", map[string]interface{}{
		"query":    query.Keyword,
		"location": query.Location,
	})

	body, err := a.client.Get(ctx, feedURL, map[string]string{
		"Accept": "application/rss+xml, application/xml, text/xml, */*",
	})
	if err != nil {
		return nil, fmt.Errorf("indeed feed fetch failed: %w", err)
	}

	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("%w: malformed feed: %v", sources.ErrSourceUnavailable, err)
	}

	country := a.config.Sources.Indeed.DefaultCountry
	candidates := make([]models.JobCandidate, 0, len(feed.Channel.Items))

	for i, item := range feed.Channel.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" || item.Link == "" {
			continue
		}

		companyName := extractCompany(item.Description)
		rawLocation := extractLocation(item.Description)
		if rawLocation == "" {
			rawLocation = query.Location
		}

		description := processors.StripMarkup(item.Description)
		combined := title + " " + description
		isRemote := normalize.IsRemoteText(rawLocation)

		candidates = append(candidates, models.JobCandidate{
			Title:          title,
			CompanyName:    companyName,
			Description:    description,
			Skills:         normalize.ExtractSkills(combined),
			Category:       normalize.CategorizeJob(title, description),
			RawLocation:    rawLocation,
			Location:       normalize.ParseLocation(rawLocation, isRemote, country),
			ApplicationURL: item.Link,
			Source:         models.SourceIndeedRSS,
			SourceID:       utils.GenerateSourceID(models.SourceTagIndeed, nativeID(item.Link, i)),
			DatePosted:     parsePubDate(item.PubDate),
		})
	}

	a.logger.Info("Indeed RSS feed mapped", map[string]interface{}{
		"items":      len(feed.Channel.Items),
		"candidates": len(candidates),
	})

	return candidates, nil
}

// nativeID prefers the feed link's job key; items without one fall back to a
// timestamp plus sequence index, unique within the run.
func nativeID(link string, seq int) string {
	if m := jobKeyPattern.FindStringSubmatch(link); m != nil {
		return m[1]
	}
	return utils.FallbackNativeID(seq)
}

// extractCompany pulls the company name out of the feed item description,
// where Indeed renders it bold.
func extractCompany(description string) string {
	if m := companyPattern.FindStringSubmatch(description); m != nil {
		return strings.TrimSpace(m[1])
	}
	return "Company not specified"
}

// extractLocation pulls the trailing "- City, ST" fragment.
func extractLocation(description string) string {
	if m := locationPattern.FindStringSubmatch(description); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func parsePubDate(raw string) time.Time {
	if raw == "" {
		return time.Now().UTC()
	}
	for _, layout := range []string{time.RFC1123Z, time.RFC1123} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}
