package indexing

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/inverted-index/index"
	apperrors "github.com/gcbaptista/inverted-index/internal/errors"
	"github.com/gcbaptista/inverted-index/internal/tokenizer"
	"github.com/gcbaptista/inverted-index/model"
)

func doc(id, title, text string) model.Document {
	return model.Document{ID: id, Title: title, Text: text, HasTitle: true, HasText: true}
}

func TestBuild_HelloWorld(t *testing.T) {
	s := NewService()
	ii, err := s.Build("books.json", model.Collection{doc("doc1", "Hello World", "a quick test")})
	require.NoError(t, err)

	assert.Equal(t, "books.json", ii.Location)
	assert.Equal(t, []string{"a", "hello", "quick", "test", "world"}, ii.Terms())

	pl, ok := ii.Lookup("hello")
	require.True(t, ok)
	assert.Equal(t, index.PostingList{
		{DocID: "doc1", Postings: []index.Posting{{Field: index.FieldTitle, Frequency: 1, Positions: []int{0}}}},
	}, pl)

	pl, ok = ii.Lookup("test")
	require.True(t, ok)
	assert.Equal(t, index.PostingList{
		{DocID: "doc1", Postings: []index.Posting{{Field: index.FieldText, Frequency: 1, Positions: []int{2}}}},
	}, pl)
}

func TestBuild_FrequencyAndPositions(t *testing.T) {
	s := NewService()
	ii, err := s.Build("src", model.Collection{
		doc("d1", "The Cat and the Hat", "the cat sat. The END"),
	})
	require.NoError(t, err)

	pl, ok := ii.Lookup("the")
	require.True(t, ok)
	require.Len(t, pl, 1)

	dp := pl[0]
	assert.Equal(t, "d1", dp.DocID)
	require.Len(t, dp.Postings, 2, "one posting per field")

	title, ok := dp.Field(index.FieldTitle)
	require.True(t, ok)
	assert.Equal(t, 2, title.Frequency)
	assert.Equal(t, []int{0, 3}, title.Positions)

	text, ok := dp.Field(index.FieldText)
	require.True(t, ok)
	assert.Equal(t, 2, text.Frequency)
	assert.Equal(t, []int{0, 3}, text.Positions)

	// "sat." normalizes to "sat"
	assert.True(t, ii.Has("sat"))
	assert.False(t, ii.Has("sat."))
}

func TestBuild_DocumentOrderIsPreserved(t *testing.T) {
	s := NewService()
	ii, err := s.Build("src", model.Collection{
		doc("zeta", "Alice", "rabbit hole"),
		doc("alpha", "Through the looking glass", "alice again"),
		doc("mid", "Alice returns", "alice alice"),
	})
	require.NoError(t, err)

	pl, ok := ii.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, pl.DocIDs())
	assert.Equal(t, "zeta", pl.FirstDocID())
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, ii.DocIDs)
}

func TestBuild_Invariants(t *testing.T) {
	docs := model.Collection{
		doc("1", "Alice in Wonderland", "Alice falls into a rabbit hole and enters a world full of imagination."),
		doc("2", "The Lord of the Rings: The Fellowship of the Ring.", "An unusual alliance of man, elf, dwarf, wizard and hobbit seek to destroy a powerful ring."),
		doc("3", "  spaced   out  ", "tabs\tand\nnewlines -- and !!! symbols"),
	}

	ii, err := NewService().Build("src", docs)
	require.NoError(t, err)

	for _, d := range docs {
		// expected occurrence count per term for this document across both fields
		expected := make(map[string]int)
		for _, field := range []string{d.Title, d.Text} {
			for _, tok := range tokenizer.Tokenize(field, nil) {
				expected[tok.Term]++
			}
		}

		for term, want := range expected {
			pl, ok := ii.Lookup(term)
			require.True(t, ok, "term %q missing", term)
			dp, ok := pl.Doc(d.ID)
			require.True(t, ok, "doc %s missing for term %q", d.ID, term)
			assert.Equal(t, want, dp.Frequency(), "frequency of %q in %s", term, d.ID)

			fields := make(map[index.Field]bool)
			for _, p := range dp.Postings {
				assert.False(t, fields[p.Field], "duplicate posting for field %s", p.Field)
				fields[p.Field] = true
				assert.Equal(t, p.Frequency, len(p.Positions))
				assert.IsIncreasing(t, p.Positions)
			}
		}
	}

	// every term present occurs in at least one document
	for _, term := range ii.Terms() {
		pl, _ := ii.Lookup(term)
		assert.NotEmpty(t, pl)
	}
}

func TestBuild_SymbolOnlyWordIndexesEmptyTerm(t *testing.T) {
	ii, err := NewService().Build("src", model.Collection{doc("d1", "Hello -- World", "text")})
	require.NoError(t, err)

	pl, ok := ii.Lookup("")
	require.True(t, ok)
	title, _ := pl[0].Field(index.FieldTitle)
	assert.Equal(t, []int{1}, title.Positions)
}

func TestBuild_PartialDocuments(t *testing.T) {
	docs := model.Collection{
		{ID: "titled", Title: "orphan title", HasTitle: true},
		doc("full", "Complete", "document body"),
		{ID: "texted", Text: "orphan text", HasText: true},
	}

	ii, err := NewService().Build("src", docs)
	require.NoError(t, err)

	pl, ok := ii.Lookup("orphan")
	require.True(t, ok)
	assert.Equal(t, []string{"titled", "texted"}, pl.DocIDs())

	titled, _ := pl.Doc("titled")
	_, hasText := titled.Field(index.FieldText)
	assert.False(t, hasText)
}

func TestBuild_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		docs model.Collection
	}{
		{"nil collection", nil},
		{"empty collection", model.Collection{}},
		{"no complete document", model.Collection{
			{ID: "a", Title: "title only", HasTitle: true},
			{ID: "b", Text: "text only", HasText: true},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ii, err := NewService().Build("src", tt.docs)
			assert.Nil(t, ii)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
			assert.Contains(t, err.Error(), "json is empty or not valid")
		})
	}
}

func TestBuild_CustomNormalizerAndClock(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s := NewService(
		WithNormalizer(strings.ToUpper),
		WithClock(func() time.Time { return fixed }),
	)

	ii, err := s.Build("src", model.Collection{doc("d1", "hello", "world")})
	require.NoError(t, err)
	assert.Equal(t, []string{"HELLO", "WORLD"}, ii.Terms())
	assert.Equal(t, fixed, ii.BuiltAt)
}

func TestBuild_IsolatedBetweenCalls(t *testing.T) {
	s := NewService()

	first, err := s.Build("first", model.Collection{doc("a", "apple", "fruit")})
	require.NoError(t, err)
	second, err := s.Build("second", model.Collection{doc("b", "banana", "fruit")})
	require.NoError(t, err)

	assert.False(t, second.Has("apple"), "second build must not see first build's terms")
	assert.False(t, first.Has("banana"), "first index must not be mutated by a later build")

	pl, _ := first.Lookup("fruit")
	assert.Equal(t, []string{"a"}, pl.DocIDs())
}

func TestBuild_Concurrent(t *testing.T) {
	s := NewService()

	var wg sync.WaitGroup
	results := make([]*index.InvertedIndex, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i))
			ii, err := s.Build(id, model.Collection{doc(id, "shared "+id, "body")})
			assert.NoError(t, err)
			results[i] = ii
		}(i)
	}
	wg.Wait()

	for i, ii := range results {
		id := string(rune('a' + i))
		pl, ok := ii.Lookup("shared")
		require.True(t, ok)
		assert.Equal(t, []string{id}, pl.DocIDs())
	}
}
