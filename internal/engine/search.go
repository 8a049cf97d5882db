package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/inverted-index/index"
	"github.com/gcbaptista/inverted-index/internal/query"
	"github.com/gcbaptista/inverted-index/internal/search"
	"github.com/gcbaptista/inverted-index/services"
)

// SearchIndex searches the most recently built index. Every word of every
// resolved term yields one entry: the first document containing it, or "" if
// none does. It fails with an IndexNotFoundError when no index exists.
func (e *Engine) SearchIndex(terms ...query.Node) ([]string, error) {
	location, ii, err := e.store.Recent()
	if err != nil {
		e.metrics.SearchQueriesTotal.WithLabelValues(search.PlaceholderMissing.String(), "index_not_found").Inc()
		return nil, err
	}
	hits := e.lookup(location, ii, query.Resolve(terms...), search.PlaceholderMissing)
	return search.Results(hits, search.PlaceholderMissing), nil
}

// SearchSpecificIndex searches the index built from location. Words that are
// not in the index are left out of the result, so it may be shorter than the
// number of words searched. It fails with an IndexNotFoundError for an unknown
// location.
func (e *Engine) SearchSpecificIndex(terms query.Node, location string) ([]string, error) {
	ii, err := e.GetIndex(location)
	if err != nil {
		e.metrics.SearchQueriesTotal.WithLabelValues(search.SkipMissing.String(), "index_not_found").Inc()
		return nil, err
	}
	hits := e.lookup(location, ii, query.Resolve(terms), search.SkipMissing)
	return search.Results(hits, search.SkipMissing), nil
}

// Search runs SearchIndex when location is empty and SearchSpecificIndex
// otherwise, and reports per-word hits alongside the results.
func (e *Engine) Search(terms query.Node, location string) (services.SearchResult, error) {
	start := time.Now()

	policy := search.SkipMissing
	var ii *index.InvertedIndex
	var err error
	if location == "" {
		policy = search.PlaceholderMissing
		location, ii, err = e.store.Recent()
	} else {
		ii, err = e.GetIndex(location)
	}
	if err != nil {
		e.metrics.SearchQueriesTotal.WithLabelValues(policy.String(), "index_not_found").Inc()
		return services.SearchResult{}, err
	}

	hits := e.lookup(location, ii, query.Resolve(terms), policy)
	return services.SearchResult{
		QueryID:  uuid.NewString(),
		Location: location,
		Policy:   policy.String(),
		Results:  search.Results(hits, policy),
		Hits:     append([]search.Hit(nil), hits...),
		Took:     time.Since(start).Microseconds(),
	}, nil
}

// lookup returns the hits for terms in ii, consulting the result cache first.
// The returned slice is shared with the cache and must not be modified.
func (e *Engine) lookup(location string, ii *index.InvertedIndex, terms []string, policy search.MissPolicy) []search.Hit {
	e.metrics.SearchQueriesTotal.WithLabelValues(policy.String(), "ok").Inc()

	key := cacheKey(ii, search.Words(terms))
	if hits, ok := e.cache.get(key); ok {
		return hits
	}

	hits := e.searcher.Lookup(ii, terms)
	for _, hit := range hits {
		if hit.Found {
			e.metrics.SearchWordsTotal.WithLabelValues("hit").Inc()
		} else {
			e.metrics.SearchWordsTotal.WithLabelValues("miss").Inc()
		}
	}
	e.cache.add(key, hits)
	e.logger.Debug("search", "location", location, "policy", policy.String(), "words", len(hits))
	return hits
}
