// Package sources holds the adapters that pull job postings from external
// feeds and APIs, mapping each source's native shape into the common
// candidate shape.
package sources

import (
	"context"
	"errors"

	"jobhound-ingest/pkg/models"
)

// ErrSourceUnavailable is returned when a source endpoint cannot be reached
// or answers outside 2xx. The coordinator skips the source's run and logs,
// rather than aborting the whole ingestion.
var ErrSourceUnavailable = errors.New("source unavailable")

// Query carries the search parameters for one adapter fetch.
type Query struct {
	Keyword  string
	Location string
}

// Source is a single external job feed. Fetch performs one finite pass over
// the source's current results; it is not restartable.
type Source interface {
	// Name returns the source identifier as persisted on job records.
	Name() string

	// Fetch pulls and maps postings for the given query. A source that is
	// not configured returns an empty batch, not an error.
	Fetch(ctx context.Context, query Query) ([]models.JobCandidate, error)
}
