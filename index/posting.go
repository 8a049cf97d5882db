package index

// Field names the part of a document a term was found in.
type Field string

const (
	FieldTitle Field = "title"
	FieldText  Field = "text"
)

// Posting records the occurrences of one term in one field of one document.
type Posting struct {
	Field     Field `json:"field"`
	Frequency int   `json:"frequency"`
	Positions []int `json:"positions"` // word offsets within the field, ascending
}

// DocPostings holds the postings of one term for one document.
// A document has at most one Posting per field.
type DocPostings struct {
	DocID    string    `json:"doc_id"`
	Postings []Posting `json:"postings"`
}

// Frequency returns the total number of occurrences across all fields.
func (dp DocPostings) Frequency() int {
	total := 0
	for _, p := range dp.Postings {
		total += p.Frequency
	}
	return total
}

// Field returns the posting for field, if the term occurs in it.
func (dp DocPostings) Field(field Field) (Posting, bool) {
	for _, p := range dp.Postings {
		if p.Field == field {
			return p, true
		}
	}
	return Posting{}, false
}

// PostingList is the list of documents containing a term,
// in the order the documents were first seen while building.
type PostingList []DocPostings

// FirstDocID returns the ID of the first document containing the term,
// or "" for an empty list.
func (pl PostingList) FirstDocID() string {
	if len(pl) == 0 {
		return ""
	}
	return pl[0].DocID
}

// Doc returns the postings for docID.
func (pl PostingList) Doc(docID string) (DocPostings, bool) {
	for _, dp := range pl {
		if dp.DocID == docID {
			return dp, true
		}
	}
	return DocPostings{}, false
}

// DocIDs returns the IDs of all documents containing the term, in list order.
func (pl PostingList) DocIDs() []string {
	ids := make([]string, len(pl))
	for i, dp := range pl {
		ids[i] = dp.DocID
	}
	return ids
}
