package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhound-ingest/internal/config"
	"jobhound-ingest/internal/sources"
	"jobhound-ingest/internal/storage"
	"jobhound-ingest/pkg/models"
)

type stubSource struct {
	name       string
	candidates []models.JobCandidate
	err        error
	calls      int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(ctx context.Context, query sources.Query) ([]models.JobCandidate, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.candidates, nil
}

func candidate(title, company, sourceID string) models.JobCandidate {
	return models.JobCandidate{
		Title:       title,
		CompanyName: company,
		Description: "desc",
		Category:    "Software Development",
		Location:    models.Location{City: "Austin", State: "TX", Country: "US"},
		Source:      models.SourceIndeedRSS,
		SourceID:    sourceID,
	}
}

func TestRunPersistsAndDeduplicates(t *testing.T) {
	store := storage.NewMemoryStore()
	src := &stubSource{
		name: "stub",
		candidates: []models.JobCandidate{
			candidate("Go Developer", "Acme", "indeed_a1"),
			candidate("Go Developer II", "Acme", "indeed_a2"),
		},
	}
	coordinator := NewCoordinator(config.DefaultConfig(), store, src)

	queries := []sources.Query{{Keyword: "go developer"}}
	counts, err := coordinator.Run(context.Background(), queries)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.JobsCreated)
	assert.Equal(t, 1, counts.CompaniesCreated)
	assert.Equal(t, 0, counts.JobsSkipped)

	// Second pass over identical feed content creates nothing.
	counts, err = coordinator.Run(context.Background(), queries)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.JobsCreated)
	assert.Equal(t, 0, counts.CompaniesCreated)
	assert.Equal(t, 2, counts.JobsSkipped)

	job, err := store.FindJobBySourceID(context.Background(), "indeed_a1")
	require.NoError(t, err)
	assert.True(t, job.IsActive)
	assert.NotEmpty(t, job.CompanyID)
}

func TestRunContinuesPastFailingSource(t *testing.T) {
	store := storage.NewMemoryStore()
	broken := &stubSource{name: "broken", err: errors.New("feed offline")}
	working := &stubSource{
		name:       "working",
		candidates: []models.JobCandidate{candidate("SRE", "Initech", "usajobs_b1")},
	}
	coordinator := NewCoordinator(config.DefaultConfig(), store, broken, working)

	counts, err := coordinator.Run(context.Background(), []sources.Query{{Keyword: "sre"}})
	require.NoError(t, err)
	assert.Equal(t, 1, counts.JobsCreated)
	assert.Equal(t, 1, broken.calls)
}

func TestRunFansOutQueriesAcrossSources(t *testing.T) {
	store := storage.NewMemoryStore()
	src := &stubSource{name: "stub"}
	coordinator := NewCoordinator(config.DefaultConfig(), store, src)

	queries := []sources.Query{{Keyword: "go"}, {Keyword: "rust"}}
	_, err := coordinator.Run(context.Background(), queries)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestSaveExtractionDeduplicatesOnTriple(t *testing.T) {
	store := storage.NewMemoryStore()
	coordinator := NewCoordinator(config.DefaultConfig(), store)

	manual := models.JobCandidate{
		Title:       "Platform Engineer",
		CompanyName: "Globex",
		Description: "Own the build pipeline.",
		Category:    "DevOps",
		Location:    models.Location{City: "Sydney", State: "NSW", Country: "AU"},
		Source:      models.SourceManual,
	}

	extraction := &models.Extraction{
		Jobs: []models.JobCandidate{manual},
		Companies: []models.CompanyCandidate{
			{Name: "Globex", Location: "Sydney, NSW"},
		},
	}

	counts, err := coordinator.SaveExtraction(context.Background(), extraction)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.JobsCreated)
	assert.Equal(t, 1, counts.CompaniesCreated)

	// Re-extracting the same page produces a fresh synthesized source id,
	// so only the title/company/city triple catches the duplicate.
	again := &models.Extraction{Jobs: []models.JobCandidate{manual}}
	counts, err = coordinator.SaveExtraction(context.Background(), again)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.JobsCreated)
	assert.Equal(t, 1, counts.JobsSkipped)
	assert.Equal(t, 0, counts.CompaniesCreated)

	job, err := store.FindJobByTitleCompanyCity(context.Background(), "Platform Engineer", "Globex", "Sydney")
	require.NoError(t, err)
	assert.Contains(t, job.SourceID, "manual_")
}

func TestSaveExtractionDistinctJobsInSameMillisecond(t *testing.T) {
	store := storage.NewMemoryStore()
	coordinator := NewCoordinator(config.DefaultConfig(), store)

	manual := func(title, company string) *models.Extraction {
		return &models.Extraction{
			Jobs: []models.JobCandidate{{
				Title:       title,
				CompanyName: company,
				Description: "desc",
				Location:    models.Location{City: "Melbourne", State: "VIC", Country: "AU"},
			}},
		}
	}

	// Back-to-back saves share a millisecond timestamp; the random suffix
	// must still keep the synthesized source ids apart so the second job is
	// created rather than skipped as a false duplicate.
	counts1, err := coordinator.SaveExtraction(context.Background(), manual("First Job", "Acme"))
	require.NoError(t, err)
	counts2, err := coordinator.SaveExtraction(context.Background(), manual("Second Job", "Initech"))
	require.NoError(t, err)

	assert.Equal(t, 1, counts1.JobsCreated)
	assert.Equal(t, 1, counts2.JobsCreated)
	assert.Equal(t, 0, counts2.JobsSkipped)

	first, err := store.FindJobByTitleCompanyCity(context.Background(), "First Job", "Acme", "Melbourne")
	require.NoError(t, err)
	second, err := store.FindJobByTitleCompanyCity(context.Background(), "Second Job", "Initech", "Melbourne")
	require.NoError(t, err)
	assert.NotEqual(t, first.SourceID, second.SourceID)
}

func TestSaveExtractionFillsSourceDefaults(t *testing.T) {
	store := storage.NewMemoryStore()
	coordinator := NewCoordinator(config.DefaultConfig(), store)

	extraction := &models.Extraction{
		Jobs: []models.JobCandidate{{
			Title:       "QA Engineer",
			CompanyName: "Hooli",
			Location:    models.Location{City: "Remote", State: "Remote", Country: "AU", Remote: true},
		}},
	}

	counts, err := coordinator.SaveExtraction(context.Background(), extraction)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.JobsCreated)

	job, err := store.FindJobByTitleCompanyCity(context.Background(), "QA Engineer", "Hooli", "Remote")
	require.NoError(t, err)
	assert.Equal(t, models.SourceManual, job.Source)
	assert.Contains(t, job.SourceID, "manual_")
}
