package index

import (
	"sort"
	"time"
)

// InvertedIndex maps a normalized term to the documents containing it.
// An InvertedIndex is built once from a single document collection and is
// never mutated afterwards, so it is safe for concurrent readers without locking.
type InvertedIndex struct {
	Location string                 `json:"location"`
	Index    map[string]PostingList `json:"index"`
	DocIDs   []string               `json:"doc_ids"` // indexed documents in source order
	BuiltAt  time.Time              `json:"built_at"`
}

// Lookup returns the posting list for term.
func (ii *InvertedIndex) Lookup(term string) (PostingList, bool) {
	pl, ok := ii.Index[term]
	return pl, ok
}

// Has reports whether term occurs in at least one document.
func (ii *InvertedIndex) Has(term string) bool {
	_, ok := ii.Index[term]
	return ok
}

// Terms returns all terms in lexical order.
func (ii *InvertedIndex) Terms() []string {
	terms := make([]string, 0, len(ii.Index))
	for term := range ii.Index {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// TermCount returns the number of distinct terms.
func (ii *InvertedIndex) TermCount() int {
	return len(ii.Index)
}

// DocCount returns the number of documents the index was built from.
func (ii *InvertedIndex) DocCount() int {
	return len(ii.DocIDs)
}

// Stats is a compact description of an index.
type Stats struct {
	Location  string    `json:"location"`
	DocCount  int       `json:"doc_count"`
	TermCount int       `json:"term_count"`
	BuiltAt   time.Time `json:"built_at"`
}

// Stats summarizes the index.
func (ii *InvertedIndex) Stats() Stats {
	return Stats{
		Location:  ii.Location,
		DocCount:  ii.DocCount(),
		TermCount: ii.TermCount(),
		BuiltAt:   ii.BuiltAt,
	}
}
