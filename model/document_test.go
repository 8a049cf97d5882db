package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCollection_KeepsKeyOrder(t *testing.T) {
	data := []byte(`{
		"zeta":  {"title": "Last in alphabet", "text": "first in file"},
		"alpha": {"title": "First in alphabet", "text": "second in file"},
		"mid":   {"title": "Middle", "text": "third"}
	}`)

	docs, err := ParseCollection(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, docs.IDs())
	assert.Equal(t, "Last in alphabet", docs[0].Title)
	assert.Equal(t, "first in file", docs[0].Text)
	assert.True(t, docs[0].Complete())
}

func TestParseCollection_MissingFields(t *testing.T) {
	data := []byte(`{
		"a": {"title": "Only a title"},
		"b": {"text": "only a text", "author": "ignored"},
		"c": {"title": "", "text": ""}
	}`)

	docs, err := ParseCollection(data)
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.True(t, docs[0].HasTitle)
	assert.False(t, docs[0].HasText)
	assert.False(t, docs[0].Complete())

	assert.False(t, docs[1].HasTitle)
	assert.True(t, docs[1].HasText)

	assert.True(t, docs[2].Complete(), "empty strings still count as present")
}

func TestParseCollection_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	data := []byte(`{"a": {"title": "one", "text": "x"}, "b": {"title": "two", "text": "y"}, "a": {"title": "three", "text": "z"}}`)

	docs, err := ParseCollection(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, docs.IDs())
	assert.Equal(t, "three", docs[0].Title)
}

func TestParseCollection_EmptyObject(t *testing.T) {
	docs, err := ParseCollection([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestParseCollection_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty input", ""},
		{"not json", "this is not json"},
		{"array", `[{"title": "a", "text": "b"}]`},
		{"string", `"hello"`},
		{"null", `null`},
		{"number", `42`},
		{"truncated", `{"a": {"title": "x"`},
		{"document not an object", `{"a": "just a string"}`},
		{"title not a string", `{"a": {"title": 12, "text": "b"}}`},
		{"trailing data", `{"a": {"title": "x", "text": "y"}} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCollection([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
