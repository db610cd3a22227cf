// Package usajobs adapts the USAJobs.gov search API into job candidates.
package usajobs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jobhound-ingest/internal/config"
	"jobhound-ingest/internal/logging"
	"jobhound-ingest/internal/logging/types"
	"jobhound-ingest/internal/normalize"
	"jobhound-ingest/internal/sources"
	"jobhound-ingest/pkg/models"
	"jobhound-ingest/pkg/utils"
)

// Adapter queries the USAJobs search API.
type Adapter struct {
	config *config.Config
	client *sources.FetchClient
	logger types.Logger
}

// New creates a USAJobs adapter
func New(cfg *config.Config, client *sources.FetchClient) *Adapter {
	return &Adapter{
		config: cfg,
		client: client,
		logger: logging.GetGlobalLogger(),
	}
}

// Name returns the source identifier
func (a *Adapter) Name() string {
	return models.SourceUSAJobs
}

type searchEnvelope struct {
	SearchResult struct {
		SearchResultItems []struct {
			MatchedObjectDescriptor descriptor `json:"MatchedObjectDescriptor"`
		} `json:"SearchResultItems"`
	} `json:"SearchResult"`
}

type descriptor struct {
	PositionID              string   `json:"PositionID"`
	PositionTitle           string   `json:"PositionTitle"`
	OrganizationName        string   `json:"OrganizationName"`
	PositionLocationDisplay string   `json:"PositionLocationDisplay"`
	QualificationSummary    string   `json:"QualificationSummary"`
	ApplyURI                []string `json:"ApplyURI"`
	PublicationStartDate    string   `json:"PublicationStartDate"`
	PositionRemuneration    []struct {
		MinimumRange string `json:"MinimumRange"`
		MaximumRange string `json:"MaximumRange"`
	} `json:"PositionRemuneration"`
}

// Fetch queries the API for jobs posted in the last day. An unset API key is
// not an error: the source logs a warning and contributes nothing, so the
// other adapters still run.
func (a *Adapter) Fetch(ctx context.Context, query sources.Query) ([]models.JobCandidate, error) {
	if a.config.Sources.USAJobs.APIKey == "" {
		a.logger.Warn("USAJobs API key not configured, skipping source")
		return nil, nil
	}

	params := url.Values{}
	params.Set("Keyword", query.Keyword)
	params.Set("ResultsPerPage", strconv.Itoa(a.config.Sources.USAJobs.ResultsPerPage))
	params.Set("DatePosted", "1")
	apiURL := a.config.Sources.USAJobs.APIURL + "?" + params.Encode()

	a.logger.Info("Fetching USAJobs search results", map[string]interface{}{
		"query": query.Keyword,
	})

	body, err := a.client.Get(ctx, apiURL, map[string]string{
		"Host":              "data.usajobs.gov",
		"User-Agent":        a.config.Sources.USAJobs.Email,
		"Authorization-Key": a.config.Sources.USAJobs.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("usajobs search failed: %w", err)
	}

	var envelope searchEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", sources.ErrSourceUnavailable, err)
	}

	country := a.config.Sources.USAJobs.DefaultCountry
	items := envelope.SearchResult.SearchResultItems
	candidates := make([]models.JobCandidate, 0, len(items))

	for i, item := range items {
		d := item.MatchedObjectDescriptor
		title := strings.TrimSpace(d.PositionTitle)
		if title == "" {
			continue
		}

		rawLocation := d.PositionLocationDisplay
		isRemote := normalize.IsRemoteText(rawLocation)
		combined := title + " " + d.QualificationSummary

		candidate := models.JobCandidate{
			Title:       title,
			CompanyName: utils.GetStringOrDefault(d.OrganizationName, "US Government"),
			Description: d.QualificationSummary,
			Skills:      normalize.ExtractSkills(combined),
			Category:    normalize.CategorizeJob(title, d.QualificationSummary),
			RawLocation: rawLocation,
			Location:    normalize.ParseLocation(rawLocation, isRemote, country),
			Salary:      parseRemuneration(d),
			Source:      models.SourceUSAJobs,
			SourceID:    usajobsSourceID(d.PositionID, i),
			DatePosted:  parseStartDate(d.PublicationStartDate),
		}
		if len(d.ApplyURI) > 0 {
			candidate.ApplicationURL = d.ApplyURI[0]
		}

		candidates = append(candidates, candidate)
	}

	a.logger.Info("USAJobs search results mapped", map[string]interface{}{
		"items":      len(items),
		"candidates": len(candidates),
	})

	return candidates, nil
}

func usajobsSourceID(positionID string, seq int) string {
	if positionID == "" {
		return utils.GenerateSourceID(models.SourceTagUSAJobs, utils.FallbackNativeID(seq))
	}
	return utils.GenerateSourceID(models.SourceTagUSAJobs, positionID)
}

// parseRemuneration maps the first remuneration range. Federal salaries are
// annual US dollar figures.
func parseRemuneration(d descriptor) *models.Salary {
	if len(d.PositionRemuneration) == 0 {
		return nil
	}

	r := d.PositionRemuneration[0]
	minPay, errMin := strconv.ParseFloat(r.MinimumRange, 64)
	maxPay, errMax := strconv.ParseFloat(r.MaximumRange, 64)
	if errMin != nil {
		return nil
	}
	if errMax != nil || maxPay < minPay {
		maxPay = minPay
	}

	return &models.Salary{
		Min:      int(minPay),
		Max:      int(maxPay),
		Currency: "USD",
		Period:   models.PeriodYearly,
	}
}

func parseStartDate(raw string) time.Time {
	for _, layout := range []string{"2006-01-02T15:04:05.9999999", "2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}
