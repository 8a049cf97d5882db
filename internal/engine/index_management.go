package engine

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/inverted-index/index"
	"github.com/gcbaptista/inverted-index/internal/errors"
	"github.com/gcbaptista/inverted-index/model"
)

// CreateIndex fetches the documents at location, builds an index from them and
// stores it under location, replacing any earlier index for it. Source errors
// are returned as produced by the DocumentSource.
//
// Concurrent calls for the same location share a single fetch and build; they
// all observe the context of the call that started it.
func (e *Engine) CreateIndex(ctx context.Context, location string) (*index.InvertedIndex, error) {
	if location == "" {
		return nil, errors.NewValidationError("location", "location cannot be empty")
	}

	v, err, shared := e.builds.Do(location, func() (any, error) {
		return e.buildAndStore(ctx, location)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		e.logger.Debug("joined in-flight build", "location", location)
	}
	return v.(*index.InvertedIndex), nil
}

// CreateIndexes builds every location, running up to the configured number of
// builds at once. It waits for all builds and returns the first error.
// Indexes that built successfully are stored even when another one fails.
func (e *Engine) CreateIndexes(ctx context.Context, locations ...string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxConcurrentBuilds)

	for _, location := range locations {
		location := location
		g.Go(func() error {
			if _, err := e.CreateIndex(gctx, location); err != nil {
				return fmt.Errorf("failed to create index for '%s': %w", location, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// CreateIndexAsync starts CreateIndex for location in the background and
// returns the ID of the job tracking it.
func (e *Engine) CreateIndexAsync(location string) (string, error) {
	if location == "" {
		return "", errors.NewValidationError("location", "location cannot be empty")
	}
	return e.jobs.Submit(model.JobTypeCreateIndex, location, func(ctx context.Context) (map[string]string, error) {
		ii, err := e.CreateIndex(ctx, location)
		if err != nil {
			return nil, err
		}
		return map[string]string{
			"doc_count":  strconv.Itoa(ii.DocCount()),
			"term_count": strconv.Itoa(ii.TermCount()),
		}, nil
	})
}

// GetJob returns the background job with jobID.
func (e *Engine) GetJob(jobID string) (*model.Job, error) {
	return e.jobs.GetJob(jobID)
}

// ListJobs returns the background jobs for location, or all jobs when location is empty.
func (e *Engine) ListJobs(location string) []*model.Job {
	return e.jobs.ListJobs(location, nil)
}

// RemoveIndex deletes the index stored for location. It is a no-op if there is none.
func (e *Engine) RemoveIndex(location string) {
	if !e.store.Remove(location) {
		return
	}
	e.cache.purge()
	e.metrics.IndexesStored.Set(float64(e.store.Len()))
	e.logger.Info("index removed", "location", location)
}

func (e *Engine) buildAndStore(ctx context.Context, location string) (*index.InvertedIndex, error) {
	start := time.Now()

	docs, err := e.source.Fetch(ctx, location)
	if err != nil {
		e.recordBuildFailure(location, err, start)
		return nil, err
	}

	ii, err := e.indexer.Build(location, docs)
	if err != nil {
		e.recordBuildFailure(location, err, start)
		return nil, err
	}

	e.store.Put(location, ii)
	e.cache.purge()

	e.metrics.IndexBuildsTotal.WithLabelValues("ok").Inc()
	e.metrics.IndexBuildDuration.Observe(time.Since(start).Seconds())
	e.metrics.DocsIndexedTotal.Add(float64(ii.DocCount()))
	e.metrics.IndexesStored.Set(float64(e.store.Len()))
	e.logger.Info("index created",
		"location", location,
		"docs", ii.DocCount(),
		"terms", ii.TermCount(),
		"duration", time.Since(start),
	)
	return ii, nil
}

func (e *Engine) recordBuildFailure(location string, err error, start time.Time) {
	status := buildStatus(err)
	e.metrics.IndexBuildsTotal.WithLabelValues(status).Inc()
	e.metrics.IndexBuildDuration.Observe(time.Since(start).Seconds())
	e.logger.Warn("index creation failed",
		"location", location,
		"status", status,
		"err", err,
	)
}

func buildStatus(err error) string {
	switch {
	case stderrors.Is(err, errors.ErrSourceNotFound):
		return "not_found"
	case stderrors.Is(err, errors.ErrNetwork):
		return "network"
	case stderrors.Is(err, errors.ErrInvalidJSON):
		return "invalid_json"
	case stderrors.Is(err, errors.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}
