package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleIndex() *InvertedIndex {
	return &InvertedIndex{
		Location: "books.json",
		DocIDs:   []string{"doc2", "doc1"},
		Index: map[string]PostingList{
			"alice": {
				{DocID: "doc2", Postings: []Posting{{Field: FieldTitle, Frequency: 1, Positions: []int{0}}}},
				{DocID: "doc1", Postings: []Posting{
					{Field: FieldTitle, Frequency: 1, Positions: []int{2}},
					{Field: FieldText, Frequency: 2, Positions: []int{1, 5}},
				}},
			},
			"rabbit": {
				{DocID: "doc1", Postings: []Posting{{Field: FieldText, Frequency: 1, Positions: []int{3}}}},
			},
		},
	}
}

func TestInvertedIndex_Lookup(t *testing.T) {
	ii := sampleIndex()

	pl, ok := ii.Lookup("alice")
	assert.True(t, ok)
	assert.Equal(t, "doc2", pl.FirstDocID())
	assert.Equal(t, []string{"doc2", "doc1"}, pl.DocIDs())

	_, ok = ii.Lookup("missing")
	assert.False(t, ok)
	assert.False(t, ii.Has("missing"))
	assert.True(t, ii.Has("rabbit"))
}

func TestInvertedIndex_Stats(t *testing.T) {
	ii := sampleIndex()

	assert.Equal(t, []string{"alice", "rabbit"}, ii.Terms())
	stats := ii.Stats()
	assert.Equal(t, "books.json", stats.Location)
	assert.Equal(t, 2, stats.DocCount)
	assert.Equal(t, 2, stats.TermCount)
}

func TestPostingList_Doc(t *testing.T) {
	pl, _ := sampleIndex().Lookup("alice")

	dp, ok := pl.Doc("doc1")
	assert.True(t, ok)
	assert.Equal(t, 3, dp.Frequency())

	text, ok := dp.Field(FieldText)
	assert.True(t, ok)
	assert.Equal(t, []int{1, 5}, text.Positions)

	_, ok = pl.Doc("doc9")
	assert.False(t, ok)

	assert.Equal(t, "", PostingList{}.FirstDocID())
}
