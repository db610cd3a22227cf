// Package storage defines the persistence collaborator used by the
// ingestion pipeline. The pipeline only ever needs find-or-create style
// lookups; engines behind the interface are interchangeable.
package storage

import (
	"context"
	"errors"
	"fmt"

	"jobhound-ingest/pkg/models"
)

// ErrNotFound is returned by lookups when no record matches.
var ErrNotFound = errors.New("record not found")

// StorageError wraps an opaque transport or integrity fault from the
// persistence engine.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Store is the persistence interface the pipeline writes through.
type Store interface {
	// FindCompanyByName looks a company up by exact, case-sensitive name.
	FindCompanyByName(ctx context.Context, name string) (*models.Company, error)

	// CreateCompany persists a new company and returns it with identity.
	CreateCompany(ctx context.Context, candidate models.CompanyCandidate) (*models.Company, error)

	// FindJobBySourceID looks a job up by its source-scoped identifier.
	FindJobBySourceID(ctx context.Context, sourceID string) (*models.Job, error)

	// FindJobByTitleCompanyCity looks a job up by the dedup triple used for
	// manually extracted postings, which have no stable native id.
	FindJobByTitleCompanyCity(ctx context.Context, title, companyName, city string) (*models.Job, error)

	// CreateJob persists a new job referencing an existing company.
	CreateJob(ctx context.Context, companyID string, candidate models.JobCandidate) (*models.Job, error)
}
