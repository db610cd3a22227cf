// Package extractor converts raw HTML (or HTML-bearing free text) into
// normalized job and company candidates using the LLM provider gateway.
package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"jobhound-ingest/internal/config"
	"jobhound-ingest/internal/llm"
	"jobhound-ingest/internal/llm/processors"
	"jobhound-ingest/internal/logging"
	"jobhound-ingest/internal/logging/types"
	"jobhound-ingest/internal/normalize"
	"jobhound-ingest/pkg/models"
)

// ErrInvalidExtractionShape is returned when the model's output carries no
// jobs array. An empty jobs array is a valid (empty) extraction.
var ErrInvalidExtractionShape = errors.New("invalid extraction shape: missing jobs array")

// Extractor builds extraction prompts, invokes the gateway and validates the
// result into candidate records.
type Extractor struct {
	config  *config.Config
	gateway *llm.Gateway
	cleaner *processors.HTMLCleaner
	logger  types.Logger
}

// New creates an Extractor over the given gateway
func New(cfg *config.Config, gateway *llm.Gateway) *Extractor {
	return &Extractor{
		config:  cfg,
		gateway: gateway,
		cleaner: processors.NewHTMLCleaner(),
		logger:  logging.GetGlobalLogger(),
	}
}

// extractedJob is the wire shape the model is instructed to return per job.
type extractedJob struct {
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	Description    string   `json:"description"`
	Skills         []string `json:"skills"`
	Salary         string   `json:"salary"`
	JobType        string   `json:"jobType"`
	Remote         bool     `json:"remote"`
	ApplicationURL string   `json:"applicationUrl"`
}

// extractionPayload is the top-level wire shape. Jobs is a pointer so a
// missing field is distinguishable from an empty array.
type extractionPayload struct {
	Jobs      *[]extractedJob           `json:"jobs"`
	Companies []models.CompanyCandidate `json:"companies"`
}

// Extract runs one extraction over the given HTML. Input beyond the
// configured character limit is silently truncated to respect provider
// context limits.
func (e *Extractor) Extract(ctx context.Context, html string) (*models.Extraction, string, error) {
	if !e.gateway.Usable() {
		return nil, "", fmt.Errorf("no LLM provider configured: %w", llm.ErrProviderUnavailable)
	}

	start := time.Now()

	cleaned, err := e.cleaner.Clean(html)
	if err != nil {
		// Fall back to the raw input; the model copes with messy markup
		cleaned = html
	}

	if len(cleaned) > e.config.Extractor.MaxHTMLChars {
		cleaned = truncateAtRuneBoundary(cleaned, e.config.Extractor.MaxHTMLChars)
		e.logger.Debug("Extraction input truncated", map[string]interface{}{
			"max_chars": e.config.Extractor.MaxHTMLChars,
		})
	}

	prompt := buildExtractionPrompt(cleaned)

	result, err := e.gateway.Generate(ctx, prompt, llm.ModeExtraction)
	if err != nil {
		return nil, "", err
	}

	payload, err := parseResponse(result.Text)
	if err != nil {
		return nil, result.Provider, err
	}

	extraction := e.enrich(payload)

	e.logger.Info("HTML extraction completed", map[string]interface{}{
		"jobs":      len(extraction.Jobs),
		"companies": len(extraction.Companies),
		"provider":  result.Provider,
		"duration":  time.Since(start).String(),
	})

	return extraction, result.Provider, nil
}

// truncateAtRuneBoundary cuts s to at most max bytes, backing up so a
// multi-byte character is never split at the cut.
func truncateAtRuneBoundary(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// buildExtractionPrompt instructs the model to return only a JSON object in
// the candidate shape.
func buildExtractionPrompt(content string) string {
	return fmt.Sprintf(`Extract job listings from this HTML. Return ONLY a valid JSON object with this structure:
{
  "jobs": [
    {
      "title": "job title",
      "company": "company name",
      "location": "city, state/country",
      "description": "job description",
      "skills": ["skill1", "skill2"],
      "salary": "salary range if available",
      "jobType": "Full-time/Part-time/Contract",
      "remote": true/false,
      "applicationUrl": "url if available"
    }
  ],
  "companies": [
    {
      "name": "company name",
      "industry": "industry",
      "location": "location",
      "description": "company description if available"
    }
  ]
}

HTML:
%s`, content)
}

// parseResponse pulls the first top-level JSON object out of the model's
// output (models wrap JSON in markdown fences or commentary) and validates
// its shape.
func parseResponse(text string) (*extractionPayload, error) {
	startIdx := strings.Index(text, "{")
	endIdx := strings.LastIndex(text, "}")
	if startIdx == -1 || endIdx <= startIdx {
		return nil, fmt.Errorf("%w: no JSON object in model output", ErrInvalidExtractionShape)
	}

	var payload extractionPayload
	if err := json.Unmarshal([]byte(text[startIdx:endIdx+1]), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExtractionShape, err)
	}

	if payload.Jobs == nil {
		return nil, ErrInvalidExtractionShape
	}

	return &payload, nil
}

// enrich turns the wire payload into candidates: category is always derived,
// skills only when the model returned none, and the location string is
// normalized with the extraction path's default country. The model's own
// salary, jobType and remote values are trusted as-is when present.
func (e *Extractor) enrich(payload *extractionPayload) *models.Extraction {
	country := e.config.Extractor.DefaultCountry

	jobs := make([]models.JobCandidate, 0, len(*payload.Jobs))
	for _, raw := range *payload.Jobs {
		skills := raw.Skills
		if len(skills) == 0 {
			skills = normalize.ExtractSkills(raw.Title + " " + raw.Description)
		}

		candidate := models.JobCandidate{
			Title:          raw.Title,
			CompanyName:    raw.Company,
			Description:    raw.Description,
			Skills:         skills,
			Category:       normalize.CategorizeJob(raw.Title, raw.Description),
			RawLocation:    raw.Location,
			Location:       normalize.ParseLocation(raw.Location, raw.Remote, country),
			SalaryRaw:      raw.Salary,
			JobType:        raw.JobType,
			ApplicationURL: raw.ApplicationURL,
			Source:         models.SourceManual,
			DatePosted:     time.Now().UTC(),
		}

		if raw.Salary != "" {
			candidate.Salary = normalize.ParseSalary(raw.Salary, salaryCurrency(country))
		}

		jobs = append(jobs, candidate)
	}

	companies := payload.Companies
	if len(companies) == 0 {
		companies = companiesFromJobs(jobs)
	}

	return &models.Extraction{Jobs: jobs, Companies: companies}
}

// companiesFromJobs derives one company candidate per distinct company name
// referenced by the extracted jobs.
func companiesFromJobs(jobs []models.JobCandidate) []models.CompanyCandidate {
	seen := make(map[string]bool)
	var companies []models.CompanyCandidate

	for _, job := range jobs {
		if job.CompanyName == "" || seen[job.CompanyName] {
			continue
		}
		seen[job.CompanyName] = true

		location := job.Location.City
		if location == "" {
			location = "Unknown"
		}

		companies = append(companies, models.CompanyCandidate{
			Name:     job.CompanyName,
			Industry: models.DefaultIndustry,
			Location: location,
		})
	}

	return companies
}

// salaryCurrency maps a pipeline's default country to its currency code.
func salaryCurrency(country string) string {
	switch country {
	case "AU":
		return "AUD"
	default:
		return "USD"
	}
}
