package services

import (
	"context"

	"github.com/gcbaptista/inverted-index/index"
	"github.com/gcbaptista/inverted-index/internal/query"
	"github.com/gcbaptista/inverted-index/internal/search"
	"github.com/gcbaptista/inverted-index/model"
)

// DocumentSource retrieves and parses the document collection stored at a location.
// Implementations report a missing local file with errors.ErrSourceNotFound,
// transport failures with errors.ErrNetwork and unparseable payloads with
// errors.ErrInvalidJSON.
type DocumentSource interface {
	Fetch(ctx context.Context, location string) (model.Collection, error)
}

// SearchResult is the response of a search against one index.
type SearchResult struct {
	QueryID  string       `json:"query_id"` // unique UUID for this search query
	Location string       `json:"location"`
	Policy   string       `json:"policy"`
	Results  []string     `json:"results"`
	Hits     []search.Hit `json:"hits"`
	Took     int64        `json:"took"` // microseconds
}

// Indexer defines operations for building indexes from sources
type Indexer interface {
	CreateIndex(ctx context.Context, location string) (*index.InvertedIndex, error)
	CreateIndexes(ctx context.Context, locations ...string) error
}

// Searcher defines operations for querying stored indexes
type Searcher interface {
	SearchIndex(terms ...query.Node) ([]string, error)
	SearchSpecificIndex(terms query.Node, location string) ([]string, error)
	Search(terms query.Node, location string) (SearchResult, error)
}

// IndexManager manages the lifecycle of indexes
type IndexManager interface {
	Indexer
	Searcher
	GetIndex(location string) (*index.InvertedIndex, error)
	Indexes() map[string]*index.InvertedIndex
	ListIndexes() []string
	RemoveIndex(location string)
}

// AsyncIndexer builds indexes in the background and reports their progress as jobs
type AsyncIndexer interface {
	CreateIndexAsync(location string) (string, error)
	GetJob(jobID string) (*model.Job, error)
	ListJobs(location string) []*model.Job
}
