package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhound-ingest/pkg/models"
)

func TestMemoryStoreCompanies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.FindCompanyByName(ctx, "Acme")
	assert.ErrorIs(t, err, ErrNotFound)

	created, err := s.CreateCompany(ctx, models.CompanyCandidate{Name: "Acme", Location: "Sydney"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.DefaultIndustry, created.Industry, "empty industry gets the default")

	found, err := s.FindCompanyByName(ctx, "Acme")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	// Name identity is case-sensitive
	_, err = s.FindCompanyByName(ctx, "acme")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.CreateCompany(ctx, models.CompanyCandidate{Name: "Acme"})
	var storageErr *StorageError
	assert.ErrorAs(t, err, &storageErr)
}

func TestMemoryStoreJobs(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	company, err := s.CreateCompany(ctx, models.CompanyCandidate{Name: "Acme"})
	require.NoError(t, err)

	candidate := models.JobCandidate{
		Title:       "Backend Developer",
		CompanyName: "Acme",
		SourceID:    "indeed_abc123",
		Location:    models.Location{City: "Sydney", State: "NSW", Country: "AU"},
	}

	job, err := s.CreateJob(ctx, company.ID, candidate)
	require.NoError(t, err)
	assert.True(t, job.IsActive)
	assert.Equal(t, company.ID, job.CompanyID)

	bySource, err := s.FindJobBySourceID(ctx, "indeed_abc123")
	require.NoError(t, err)
	assert.Equal(t, job.ID, bySource.ID)

	byTriple, err := s.FindJobByTitleCompanyCity(ctx, "Backend Developer", "Acme", "Sydney")
	require.NoError(t, err)
	assert.Equal(t, job.ID, byTriple.ID)

	_, err = s.FindJobBySourceID(ctx, "indeed_missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.CreateJob(ctx, company.ID, candidate)
	var storageErr *StorageError
	assert.ErrorAs(t, err, &storageErr)
}
