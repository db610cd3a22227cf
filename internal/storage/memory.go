package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"jobhound-ingest/pkg/models"
)

// MemoryStore is a mutex-guarded in-memory Store. It backs tests and
// dependency-free runs.
type MemoryStore struct {
	mu              sync.RWMutex
	companiesByName map[string]*models.Company
	jobsBySourceID  map[string]*models.Job
	jobsByTripleKey map[string]*models.Job
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		companiesByName: make(map[string]*models.Company),
		jobsBySourceID:  make(map[string]*models.Job),
		jobsByTripleKey: make(map[string]*models.Job),
	}
}

func tripleKey(title, companyName, city string) string {
	return fmt.Sprintf("%s\x00%s\x00%s", title, companyName, city)
}

// FindCompanyByName looks a company up by exact name
func (s *MemoryStore) FindCompanyByName(ctx context.Context, name string) (*models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	company, ok := s.companiesByName[name]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *company
	return &copied, nil
}

// CreateCompany persists a new company
func (s *MemoryStore) CreateCompany(ctx context.Context, candidate models.CompanyCandidate) (*models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.companiesByName[candidate.Name]; exists {
		return nil, &StorageError{Op: "create company", Err: fmt.Errorf("duplicate name %q", candidate.Name)}
	}

	company := models.NewCompany(uuid.New().String(), candidate)
	s.companiesByName[company.Name] = company

	copied := *company
	return &copied, nil
}

// FindJobBySourceID looks a job up by its source-scoped identifier
func (s *MemoryStore) FindJobBySourceID(ctx context.Context, sourceID string) (*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobsBySourceID[sourceID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *job
	return &copied, nil
}

// FindJobByTitleCompanyCity looks a job up by the manual dedup triple
func (s *MemoryStore) FindJobByTitleCompanyCity(ctx context.Context, title, companyName, city string) (*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobsByTripleKey[tripleKey(title, companyName, city)]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *job
	return &copied, nil
}

// CreateJob persists a new job
func (s *MemoryStore) CreateJob(ctx context.Context, companyID string, candidate models.JobCandidate) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobsBySourceID[candidate.SourceID]; exists {
		return nil, &StorageError{Op: "create job", Err: fmt.Errorf("duplicate source id %q", candidate.SourceID)}
	}

	job := models.NewJob(uuid.New().String(), companyID, candidate)
	s.jobsBySourceID[job.SourceID] = job
	s.jobsByTripleKey[tripleKey(job.Title, job.CompanyName, job.Location.City)] = job

	copied := *job
	return &copied, nil
}
