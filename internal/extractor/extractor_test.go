package extractor

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhound-ingest/internal/config"
	"jobhound-ingest/internal/llm"
	"jobhound-ingest/pkg/models"
)

// scriptedProvider returns a fixed completion, recording the prompt it saw.
type scriptedProvider struct {
	name   string
	text   string
	err    error
	prompt string
}

func (s *scriptedProvider) Complete(ctx context.Context, prompt string, mode llm.Mode) (string, error) {
	s.prompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func (s *scriptedProvider) Available() bool { return true }
func (s *scriptedProvider) Name() string    { return s.name }

const twoJobFixture = `Here is the extracted data:
` + "```json" + `
{
  "jobs": [
    {
      "title": "Backend Developer",
      "company": "Acme Pty Ltd",
      "location": "Sydney, NSW",
      "description": "Develop APIs with Go and PostgreSQL",
      "skills": [],
      "salary": "$120k-$140k per year",
      "jobType": "Full-time",
      "remote": false,
      "applicationUrl": "https://acme.example/jobs/1"
    },
    {
      "title": "Frontend Developer",
      "company": "Widgets Co",
      "location": "",
      "description": "React work, fully remote",
      "skills": ["React", "TypeScript"],
      "salary": "",
      "jobType": "Contract",
      "remote": true,
      "applicationUrl": ""
    }
  ]
}
` + "```"

func newTestExtractor(t *testing.T, p llm.Provider) *Extractor {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	other := &scriptedProvider{name: llm.ProviderClaude, text: "{}"}
	gateway := llm.NewGateway(cfg, p, other)
	return New(cfg, gateway)
}

func TestExtractTwoJobs(t *testing.T) {
	provider := &scriptedProvider{name: llm.ProviderOllama, text: twoJobFixture}
	e := newTestExtractor(t, provider)

	extraction, answeredBy, err := e.Extract(context.Background(), "<html><body>two jobs</body></html>")
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderOllama, answeredBy)
	require.Len(t, extraction.Jobs, 2)

	sydney := extraction.Jobs[0]
	assert.Equal(t, "Backend Developer", sydney.Title)
	assert.Equal(t, "Backend Development", sydney.Category)
	assert.Equal(t, "Sydney", sydney.Location.City)
	assert.Equal(t, "NSW", sydney.Location.State)
	assert.Equal(t, "AU", sydney.Location.Country, "extraction path defaults country to AU")
	assert.False(t, sydney.Location.Remote)
	// Model returned no skills, so they come from the vocabulary scan
	assert.Contains(t, sydney.Skills, "Go")
	assert.Contains(t, sydney.Skills, "PostgreSQL")
	require.NotNil(t, sydney.Salary)
	assert.Equal(t, 120, sydney.Salary.Min)
	assert.Equal(t, 140, sydney.Salary.Max)
	assert.Equal(t, "AUD", sydney.Salary.Currency)

	remote := extraction.Jobs[1]
	assert.True(t, remote.Location.Remote)
	assert.Equal(t, "Remote", remote.Location.City)
	assert.Equal(t, []string{"React", "TypeScript"}, remote.Skills, "model-provided skills are kept")
	assert.Nil(t, remote.Salary)
	assert.Equal(t, models.SourceManual, remote.Source)

	// Companies were absent from the payload, derived from job names
	require.Len(t, extraction.Companies, 2)
	assert.Equal(t, "Acme Pty Ltd", extraction.Companies[0].Name)
	assert.Equal(t, models.DefaultIndustry, extraction.Companies[0].Industry)
}

func TestExtractMissingJobsField(t *testing.T) {
	provider := &scriptedProvider{name: llm.ProviderOllama, text: `{"companies": []}`}
	e := newTestExtractor(t, provider)

	_, _, err := e.Extract(context.Background(), "<html></html>")
	assert.ErrorIs(t, err, ErrInvalidExtractionShape)
}

func TestExtractEmptyJobsArrayIsValid(t *testing.T) {
	provider := &scriptedProvider{name: llm.ProviderOllama, text: `{"jobs": []}`}
	e := newTestExtractor(t, provider)

	extraction, _, err := e.Extract(context.Background(), "<html></html>")
	require.NoError(t, err)
	assert.Empty(t, extraction.Jobs)
	assert.Empty(t, extraction.Companies)
}

func TestExtractNoJSONInResponse(t *testing.T) {
	provider := &scriptedProvider{name: llm.ProviderOllama, text: "I could not find any jobs."}
	e := newTestExtractor(t, provider)

	_, _, err := e.Extract(context.Background(), "<html></html>")
	assert.ErrorIs(t, err, ErrInvalidExtractionShape)
}

func TestExtractTruncatesInput(t *testing.T) {
	provider := &scriptedProvider{name: llm.ProviderOllama, text: `{"jobs": []}`}
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.Extractor.MaxHTMLChars = 200

	gateway := llm.NewGateway(cfg, provider, &scriptedProvider{name: llm.ProviderClaude})
	e := New(cfg, gateway)

	big := "<html><body>" + strings.Repeat("job listing ", 2000) + "</body></html>"
	_, _, err = e.Extract(context.Background(), big)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(provider.prompt), 200+len(buildExtractionPrompt("")),
		"HTML is cut to the character limit before prompting")
}

func TestTruncateAtRuneBoundary(t *testing.T) {
	// "é" is two bytes; a cut at an odd offset lands mid-rune and must back
	// up rather than emit a dangling continuation byte.
	s := strings.Repeat("é", 10)
	got := truncateAtRuneBoundary(s, 7)
	assert.Equal(t, strings.Repeat("é", 3), got)
	assert.True(t, utf8.ValidString(got))

	assert.Equal(t, strings.Repeat("é", 4), truncateAtRuneBoundary(s, 8),
		"cut on a boundary is kept as-is")
	assert.Equal(t, s, truncateAtRuneBoundary(s, 100), "short input is untouched")
	assert.Equal(t, "abc", truncateAtRuneBoundary("abcdef", 3))
}
