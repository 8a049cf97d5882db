package indexing

import (
	"log/slog"
	"time"

	"github.com/gcbaptista/inverted-index/index"
	"github.com/gcbaptista/inverted-index/internal/errors"
	"github.com/gcbaptista/inverted-index/internal/tokenizer"
	"github.com/gcbaptista/inverted-index/model"
)

const invalidCollectionMessage = "unable to build index, json is empty or not valid"

// Service builds inverted indexes from document collections.
// A Service holds no per-build state, so one Service may run any number of
// builds concurrently.
type Service struct {
	normalize tokenizer.NormalizeFunc
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithNormalizer replaces tokenizer.Normalize as the term normalizer.
func WithNormalizer(fn tokenizer.NormalizeFunc) Option {
	return func(s *Service) {
		if fn != nil {
			s.normalize = fn
		}
	}
}

// WithLogger sets the logger used for build diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for BuiltAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a new indexing Service.
func NewService(opts ...Option) *Service {
	s := &Service{
		normalize: tokenizer.Normalize,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks that docs can be indexed: it must be non-empty and at least
// one document must carry both a title and a text field.
func Validate(docs model.Collection) error {
	for _, doc := range docs {
		if doc.Complete() {
			return nil
		}
	}
	return errors.NewValidationError("", invalidCollectionMessage)
}

// Build creates a new inverted index for location from docs.
// Documents missing a title or a text field contribute only the field they carry.
func (s *Service) Build(location string, docs model.Collection) (*index.InvertedIndex, error) {
	if err := Validate(docs); err != nil {
		return nil, err
	}

	start := time.Now()
	b := newBuilder(s.normalize)
	for _, doc := range docs {
		if doc.HasTitle {
			b.addField(doc.ID, index.FieldTitle, doc.Title)
		}
		if doc.HasText {
			b.addField(doc.ID, index.FieldText, doc.Text)
		}
	}

	ii := &index.InvertedIndex{
		Location: location,
		Index:    b.terms,
		DocIDs:   docs.IDs(),
		BuiltAt:  s.now(),
	}
	s.logger.Debug("index built",
		"location", location,
		"docs", ii.DocCount(),
		"terms", ii.TermCount(),
		"duration", time.Since(start),
	)
	return ii, nil
}

// builder is the scratch state of a single Build call.
type builder struct {
	normalize tokenizer.NormalizeFunc
	terms     map[string]index.PostingList
	// slots maps term -> docID -> offset of the document in terms[term]
	slots map[string]map[string]int
}

func newBuilder(normalize tokenizer.NormalizeFunc) *builder {
	return &builder{
		normalize: normalize,
		terms:     make(map[string]index.PostingList),
		slots:     make(map[string]map[string]int),
	}
}

func (b *builder) addField(docID string, field index.Field, text string) {
	for _, tok := range tokenizer.Tokenize(text, b.normalize) {
		b.add(tok.Term, docID, field, tok.Position)
	}
}

func (b *builder) add(term, docID string, field index.Field, position int) {
	docSlots, ok := b.slots[term]
	if !ok {
		docSlots = make(map[string]int)
		b.slots[term] = docSlots
	}

	slot, ok := docSlots[docID]
	if !ok {
		docSlots[docID] = len(b.terms[term])
		b.terms[term] = append(b.terms[term], index.DocPostings{
			DocID:    docID,
			Postings: []index.Posting{newPosting(field, position)},
		})
		return
	}

	dp := &b.terms[term][slot]
	for i := range dp.Postings {
		if dp.Postings[i].Field == field {
			dp.Postings[i].Frequency++
			dp.Postings[i].Positions = append(dp.Postings[i].Positions, position)
			return
		}
	}
	dp.Postings = append(dp.Postings, newPosting(field, position))
}

func newPosting(field index.Field, position int) index.Posting {
	return index.Posting{Field: field, Frequency: 1, Positions: []int{position}}
}
