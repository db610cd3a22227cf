// Package ingest runs the pipeline: pull candidates from every configured
// source, deduplicate them against the store, and persist what is new.
package ingest

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"jobhound-ingest/internal/config"
	"jobhound-ingest/internal/logging"
	"jobhound-ingest/internal/logging/types"
	"jobhound-ingest/internal/sources"
	"jobhound-ingest/internal/storage"
	"jobhound-ingest/pkg/models"
	"jobhound-ingest/pkg/utils"
)

// Counts summarizes a persistence pass.
type Counts struct {
	JobsCreated      int `json:"jobs_created"`
	CompaniesCreated int `json:"companies_created"`
	JobsSkipped      int `json:"jobs_skipped"`
}

// Coordinator fans queries out to the source adapters and writes the
// resulting candidates through the store exactly once each.
type Coordinator struct {
	config  *config.Config
	store   storage.Store
	sources []sources.Source
	logger  types.Logger

	// mu serializes persistence so concurrent fetches cannot race the
	// find-then-create dedup checks.
	mu sync.Mutex
}

// NewCoordinator creates a coordinator over the given store and adapters.
func NewCoordinator(cfg *config.Config, store storage.Store, srcs ...sources.Source) *Coordinator {
	return &Coordinator{
		config:  cfg,
		store:   store,
		sources: srcs,
		logger:  logging.GetGlobalLogger(),
	}
}

// Run executes one ingestion pass: every query against every source,
// fetches concurrent, persistence serialized. A failing source is logged
// and skipped so the remaining sources still contribute. Run only returns
// an error when the pass deadline or the caller's context expires.
func (c *Coordinator) Run(ctx context.Context, queries []sources.Query) (Counts, error) {
	runCtx, cancel := context.WithTimeout(ctx, c.config.Ingest.RunTimeout)
	defer cancel()

	c.logger.Info("Starting ingestion run", map[string]interface{}{
		"sources": len(c.sources),
		"queries": len(queries),
	})

	var total Counts
	g, gctx := errgroup.WithContext(runCtx)

	for _, src := range c.sources {
		for _, query := range queries {
			src, query := src, query
			g.Go(func() error {
				candidates, err := src.Fetch(gctx, query)
				if err != nil {
					if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
						return err
					}
					c.logger.Warn("Source fetch failed, continuing run", map[string]interface{}{
						"source": src.Name(),
						"query":  query.Keyword,
						"error":  err.Error(),
					})
					return nil
				}

				counts := c.persistCandidates(gctx, candidates)

				c.mu.Lock()
				total.JobsCreated += counts.JobsCreated
				total.CompaniesCreated += counts.CompaniesCreated
				total.JobsSkipped += counts.JobsSkipped
				c.mu.Unlock()
				return nil
			})
		}
	}

	err := g.Wait()

	c.logger.Info("Ingestion run finished", map[string]interface{}{
		"jobs_created":      total.JobsCreated,
		"companies_created": total.CompaniesCreated,
		"jobs_skipped":      total.JobsSkipped,
	})

	return total, err
}

// SaveExtraction persists the output of a manual HTML extraction. Jobs
// without a source id get a synthesized manual one; dedup falls back to the
// title/company/city triple since manual postings have no stable native id.
func (c *Coordinator) SaveExtraction(ctx context.Context, extraction *models.Extraction) (Counts, error) {
	var counts Counts

	// Same mutex as the adapter path so the triple dedup check stays atomic
	// with the write, including against a concurrent ingestion run.
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, companyCandidate := range extraction.Companies {
		created, err := c.resolveCompany(ctx, companyCandidate)
		if err != nil {
			return counts, err
		}
		if created {
			counts.CompaniesCreated++
		}
	}

	for _, candidate := range extraction.Jobs {
		if candidate.Source == "" {
			candidate.Source = models.SourceManual
		}
		if candidate.SourceID == "" {
			candidate.SourceID = utils.GenerateSourceID(models.SourceTagManual, utils.RandomNativeID())
		}

		created, companyCreated, err := c.persistJob(ctx, candidate, true)
		if err != nil {
			return counts, err
		}
		if companyCreated {
			counts.CompaniesCreated++
		}
		if created {
			counts.JobsCreated++
		} else {
			counts.JobsSkipped++
		}
	}

	return counts, nil
}

// persistCandidates writes a batch under the coordinator mutex. A storage
// fault drops the record, not the batch.
func (c *Coordinator) persistCandidates(ctx context.Context, candidates []models.JobCandidate) Counts {
	var counts Counts

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, candidate := range candidates {
		created, companyCreated, err := c.persistJob(ctx, candidate, false)
		if err != nil {
			c.logger.Error("Failed to persist candidate", map[string]interface{}{
				"title":     candidate.Title,
				"source_id": candidate.SourceID,
				"error":     err.Error(),
			})
			continue
		}
		if companyCreated {
			counts.CompaniesCreated++
		}
		if created {
			counts.JobsCreated++
		} else {
			counts.JobsSkipped++
		}
	}

	return counts
}

// persistJob deduplicates one candidate and creates its job and, when
// needed, its company. Adapter candidates dedup on source id; manual ones
// also dedup on the title/company/city triple.
func (c *Coordinator) persistJob(ctx context.Context, candidate models.JobCandidate, manual bool) (jobCreated, companyCreated bool, err error) {
	if existing, findErr := c.store.FindJobBySourceID(ctx, candidate.SourceID); findErr == nil && existing != nil {
		return false, false, nil
	} else if findErr != nil && !errors.Is(findErr, storage.ErrNotFound) {
		return false, false, findErr
	}

	if manual {
		existing, findErr := c.store.FindJobByTitleCompanyCity(ctx, candidate.Title, candidate.CompanyName, candidate.Location.City)
		if findErr == nil && existing != nil {
			return false, false, nil
		}
		if findErr != nil && !errors.Is(findErr, storage.ErrNotFound) {
			return false, false, findErr
		}
	}

	company, created, err := c.findOrCreateCompany(ctx, candidate)
	if err != nil {
		return false, false, err
	}

	if _, err := c.store.CreateJob(ctx, company.ID, candidate); err != nil {
		// A concurrent writer may have won the race; the posting exists
		// either way.
		var storageErr *storage.StorageError
		if errors.As(err, &storageErr) {
			if existing, findErr := c.store.FindJobBySourceID(ctx, candidate.SourceID); findErr == nil && existing != nil {
				return false, created, nil
			}
		}
		return false, created, err
	}

	return true, created, nil
}

// findOrCreateCompany resolves the candidate's company by exact name,
// creating it with defaults on first reference.
func (c *Coordinator) findOrCreateCompany(ctx context.Context, candidate models.JobCandidate) (*models.Company, bool, error) {
	company, err := c.store.FindCompanyByName(ctx, candidate.CompanyName)
	if err == nil {
		return company, false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, false, err
	}

	created, err := c.store.CreateCompany(ctx, models.CompanyCandidate{
		Name:     candidate.CompanyName,
		Location: candidate.RawLocation,
	})
	if err != nil {
		// First-write-wins backends report the losing create; re-read the
		// winner instead of failing the job.
		if company, findErr := c.store.FindCompanyByName(ctx, candidate.CompanyName); findErr == nil {
			return company, false, nil
		}
		return nil, false, err
	}

	return created, true, nil
}

// resolveCompany find-or-creates a standalone extracted company record.
func (c *Coordinator) resolveCompany(ctx context.Context, candidate models.CompanyCandidate) (bool, error) {
	_, err := c.store.FindCompanyByName(ctx, candidate.Name)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return false, err
	}

	if _, err := c.store.CreateCompany(ctx, candidate); err != nil {
		if _, findErr := c.store.FindCompanyByName(ctx, candidate.Name); findErr == nil {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
