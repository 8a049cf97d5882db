package engine

import (
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/gcbaptista/inverted-index/index"
	"github.com/gcbaptista/inverted-index/internal/errors"
	"github.com/gcbaptista/inverted-index/internal/indexing"
	"github.com/gcbaptista/inverted-index/internal/jobs"
	"github.com/gcbaptista/inverted-index/internal/metrics"
	"github.com/gcbaptista/inverted-index/internal/search"
	"github.com/gcbaptista/inverted-index/internal/tokenizer"
	"github.com/gcbaptista/inverted-index/services"
	"github.com/gcbaptista/inverted-index/store"
)

const defaultMaxConcurrentBuilds = 4

// Ensure Engine implements services.IndexManager and services.AsyncIndexer at compile time.
var (
	_ services.IndexManager = (*Engine)(nil)
	_ services.AsyncIndexer = (*Engine)(nil)
)

// Engine builds, stores and searches inverted indexes keyed by source location.
// It implements the services.IndexManager interface.
type Engine struct {
	store    *store.IndexStore
	source   services.DocumentSource
	indexer  *indexing.Service
	searcher *search.Service
	cache    *resultCache
	jobs     *jobs.Manager
	metrics  *metrics.Metrics
	logger   *slog.Logger

	// builds collapses concurrent CreateIndex calls for the same location
	builds              singleflight.Group
	maxConcurrentBuilds int
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	normalize           tokenizer.NormalizeFunc
	metrics             *metrics.Metrics
	logger              *slog.Logger
	cacheSize           int
	maxConcurrentBuilds int
}

// WithNormalizer sets the term normalizer used for both building and searching.
func WithNormalizer(fn tokenizer.NormalizeFunc) Option {
	return func(o *engineOptions) { o.normalize = fn }
}

// WithMetrics sets the collectors the engine reports to.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *engineOptions) { o.metrics = m }
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *engineOptions) { o.logger = logger }
}

// WithCacheSize sets the number of cached search results; 0 disables the cache.
func WithCacheSize(n int) Option {
	return func(o *engineOptions) { o.cacheSize = n }
}

// WithMaxConcurrentBuilds bounds the number of builds CreateIndexes runs at once.
func WithMaxConcurrentBuilds(n int) Option {
	return func(o *engineOptions) { o.maxConcurrentBuilds = n }
}

// NewEngine creates an engine that fetches documents through source.
func NewEngine(source services.DocumentSource, opts ...Option) *Engine {
	o := engineOptions{
		normalize:           tokenizer.Normalize,
		maxConcurrentBuilds: defaultMaxConcurrentBuilds,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default().With("component", "engine")
	}
	if o.metrics == nil {
		o.metrics = metrics.New()
	}
	if o.maxConcurrentBuilds < 1 {
		o.maxConcurrentBuilds = 1
	}

	jobManager := jobs.NewManager(o.maxConcurrentBuilds, o.logger.With("component", "jobs"))
	jobManager.Start()

	return &Engine{
		store:  store.NewIndexStore(),
		source: source,
		indexer: indexing.NewService(
			indexing.WithNormalizer(o.normalize),
			indexing.WithLogger(o.logger),
		),
		searcher:            search.NewService(o.normalize),
		cache:               newResultCache(o.cacheSize, o.metrics),
		jobs:                jobManager,
		metrics:             o.metrics,
		logger:              o.logger,
		maxConcurrentBuilds: o.maxConcurrentBuilds,
	}
}

// GetIndex returns the index built from location.
func (e *Engine) GetIndex(location string) (*index.InvertedIndex, error) {
	ii, ok := e.store.Get(location)
	if !ok {
		return nil, errors.NewIndexNotFoundError(location)
	}
	return ii, nil
}

// Indexes returns every stored index keyed by location.
func (e *Engine) Indexes() map[string]*index.InvertedIndex {
	return e.store.All()
}

// ListIndexes returns the locations of all stored indexes, oldest first.
func (e *Engine) ListIndexes() []string {
	return e.store.Locations()
}

// RecentIndex returns the most recently built index.
func (e *Engine) RecentIndex() (*index.InvertedIndex, error) {
	_, ii, err := e.store.Recent()
	return ii, err
}

// Close stops background jobs, cancelling builds still in progress.
func (e *Engine) Close() {
	e.jobs.Stop()
}
