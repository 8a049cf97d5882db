package search

import (
	"github.com/gcbaptista/inverted-index/index"
	"github.com/gcbaptista/inverted-index/internal/tokenizer"
)

// MissPolicy decides what a search emits for a word that is not in the index.
type MissPolicy int

const (
	// PlaceholderMissing emits "" for every missing word, so the result has
	// exactly one entry per searched word.
	PlaceholderMissing MissPolicy = iota
	// SkipMissing drops missing words from the result.
	SkipMissing
)

func (p MissPolicy) String() string {
	switch p {
	case PlaceholderMissing:
		return "placeholder"
	case SkipMissing:
		return "skip"
	default:
		return "unknown"
	}
}

// Hit is the outcome of looking up one query word.
type Hit struct {
	Word  string `json:"word"`
	Term  string `json:"term"`
	DocID string `json:"doc_id"`
	Found bool   `json:"found"`
}

// Service executes resolved query terms against an index.
type Service struct {
	normalize tokenizer.NormalizeFunc
}

// NewService creates a search Service. A nil normalize falls back to
// tokenizer.Normalize; it must match the normalizer used to build the indexes.
func NewService(normalize tokenizer.NormalizeFunc) *Service {
	if normalize == nil {
		normalize = tokenizer.Normalize
	}
	return &Service{normalize: normalize}
}

// Words splits every raw term on whitespace and returns the words in order.
func Words(terms []string) []string {
	words := make([]string, 0, len(terms))
	for _, term := range terms {
		words = append(words, tokenizer.SplitWords(term)...)
	}
	return words
}

// Lookup probes ii for every word of terms and reports one Hit per word.
// For a found word DocID is the first document containing its term.
func (s *Service) Lookup(ii *index.InvertedIndex, terms []string) []Hit {
	words := Words(terms)
	hits := make([]Hit, 0, len(words))
	for _, word := range words {
		term := s.normalize(word)
		hit := Hit{Word: word, Term: term}
		if pl, ok := ii.Lookup(term); ok {
			hit.DocID = pl.FirstDocID()
			hit.Found = true
		}
		hits = append(hits, hit)
	}
	return hits
}

// Execute searches ii for terms and returns one document ID per found word,
// applying policy to the words that are not found.
func (s *Service) Execute(ii *index.InvertedIndex, terms []string, policy MissPolicy) []string {
	return Results(s.Lookup(ii, terms), policy)
}

// Results turns hits into the document ID sequence for policy.
func Results(hits []Hit, policy MissPolicy) []string {
	results := make([]string, 0, len(hits))
	for _, hit := range hits {
		if hit.Found {
			results = append(results, hit.DocID)
			continue
		}
		if policy == PlaceholderMissing {
			results = append(results, "")
		}
	}
	return results
}
